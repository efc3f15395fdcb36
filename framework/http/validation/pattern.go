package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// delimiters accepted around a PCRE-style pattern, e.g. "/^[a-z]+$/i".
const delimiters = "/#~%@!"

// compilePattern compiles a bare RE2 pattern or a delimited one with
// trailing flags. Supported flags are i, m, s and U; u is accepted and
// ignored since matching is always UTF-8.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	body, flags, delimited := splitDelimited(pattern)
	if delimited {
		var prefix strings.Builder
		for _, f := range flags {
			switch f {
			case 'i', 'm', 's', 'U':
				prefix.WriteRune(f)
			case 'u':
			default:
				return nil, fmt.Errorf("%w: unsupported flag %q in %q", ErrInvalidPattern, f, pattern)
			}
		}
		if prefix.Len() > 0 {
			body = "(?" + prefix.String() + ")" + body
		}
	}
	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// splitDelimited strips delimiters from "/body/flags". Patterns without a
// recognised delimiter pair are returned untouched.
func splitDelimited(pattern string) (body, flags string, ok bool) {
	if len(pattern) < 2 || !strings.ContainsRune(delimiters, rune(pattern[0])) {
		return pattern, "", false
	}
	end := strings.LastIndexByte(pattern, pattern[0])
	if end <= 0 {
		return pattern, "", false
	}
	flags = pattern[end+1:]
	for _, f := range flags {
		if (f < 'a' || f > 'z') && (f < 'A' || f > 'Z') {
			return pattern, "", false
		}
	}
	return pattern[1:end], flags, true
}
