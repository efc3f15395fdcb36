package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is used for character counting when none is configured.
const DefaultCharset = "UTF-8"

// lengthFunc counts characters of a raw submitted string.
type lengthFunc func(string) int

// charsetLength resolves a charset label (any WHATWG label such as
// "utf-8", "iso-8859-2" or "windows-1250") to a character counter.
// Submitted bytes are decoded from that charset before runes are counted.
func charsetLength(name string) (lengthFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return utf8.RuneCountInString, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("validation: charset %q: %w", name, err)
	}
	return func(s string) int {
		decoded, err := enc.NewDecoder().String(s)
		if err != nil {
			return len(s)
		}
		return utf8.RuneCountInString(decoded)
	}, nil
}
