package validation

import (
	"html"
	"strings"
)

// DefaultTrimChars mirrors the usual trim set: space, tab, newline,
// carriage return, NUL and vertical tab.
const DefaultTrimChars = " \t\n\r\x00\x0B"

// HTMLSanitize escapes HTML special characters in the given fields, or in
// every field when none are named. Sequences are escaped element-wise.
func (v *Validator) HTMLSanitize(fields ...string) bool {
	v.transform(html.EscapeString, fields)
	return true
}

// TrimSpaces trims chars (DefaultTrimChars when empty) from both ends of
// the given fields, or of every field when none are named.
func (v *Validator) TrimSpaces(chars string, fields ...string) bool {
	if chars == "" {
		chars = DefaultTrimChars
	}
	v.transform(func(s string) string { return strings.Trim(s, chars) }, fields)
	return true
}

func (v *Validator) transform(fn func(string) string, fields []string) {
	if len(fields) == 0 {
		for field, val := range v.form {
			v.form[field] = val.mapItems(fn)
		}
		return
	}
	for _, field := range fields {
		if val, ok := v.form[field]; ok {
			v.form[field] = val.mapItems(fn)
		}
	}
}
