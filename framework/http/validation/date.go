package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var errUnsupportedFormat = errors.New("validation: unsupported date format character")

type dateField struct {
	layout  string // Go layout fragment
	pattern string // what the fragment may match in the input
}

// phpDate maps PHP date() format characters onto Go layout fragments.
// Characters that have no fixed-width parseable Go equivalent are absent.
var phpDate = map[byte]dateField{
	'd': {"02", `\d{2}`},
	'j': {"2", `\d{1,2}`},
	'D': {"Mon", `[A-Za-z]{3}`},
	'l': {"Monday", `[A-Za-z]+`},
	'm': {"01", `\d{2}`},
	'n': {"1", `\d{1,2}`},
	'M': {"Jan", `[A-Za-z]{3}`},
	'F': {"January", `[A-Za-z]+`},
	'y': {"06", `\d{2}`},
	'Y': {"2006", `\d{4}`},
	'a': {"pm", `[ap]m`},
	'A': {"PM", `[AP]M`},
	'g': {"3", `\d{1,2}`},
	'h': {"03", `\d{2}`},
	'H': {"15", `\d{2}`},
	'i': {"04", `\d{2}`},
	's': {"05", `\d{2}`},
	'v': {".000", `\d{3}`},
	'u': {".000000", `\d{6}`},
	'T': {"MST", `[A-Z]{3,5}`},
	'P': {"-07:00", `[+-]\d{2}:\d{2}`},
	'O': {"-0700", `[+-]\d{4}`},
}

// dateSegment is either a layout fragment or a literal run.
type dateSegment struct {
	field   *dateField
	literal string
}

// dateFormat is a PHP date format split so that literal text never reaches
// the Go layout parser: "Y-m-d 1" would otherwise read the 1 as a month.
type dateFormat struct {
	segments []dateSegment
	re       *regexp.Regexp // one group per fragment
}

// parseDateFormat splits format into fragments and literals. A backslash
// makes the next character literal. Letters with no layout equivalent fail.
func parseDateFormat(format string) (*dateFormat, error) {
	var (
		segs []dateSegment
		lit  strings.Builder
		re   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, dateSegment{literal: lit.String()})
			re.WriteString(regexp.QuoteMeta(lit.String()))
			lit.Reset()
		}
	}

	re.WriteString("^")
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '\\' {
			if i+1 < len(format) {
				i++
				lit.WriteByte(format[i])
			}
			continue
		}
		if f, ok := phpDate[c]; ok {
			flush()
			segs = append(segs, dateSegment{field: &f})
			re.WriteString("(" + f.pattern + ")")
			continue
		}
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return nil, errUnsupportedFormat
		}
		lit.WriteByte(c)
	}
	flush()
	re.WriteString("$")

	compiled, err := regexp.Compile(re.String())
	if err != nil {
		return nil, err
	}
	return &dateFormat{segments: segs, re: compiled}, nil
}

// parse extracts each fragment from value and hands only those to
// time.Parse, joined by a separator Go does not treat as a token.
func (f *dateFormat) parse(value string) (time.Time, bool) {
	groups := f.re.FindStringSubmatch(value)
	if groups == nil {
		return time.Time{}, false
	}
	var layout, input []string
	for _, seg := range f.segments {
		if seg.field == nil {
			continue
		}
		part := groups[len(input)+1]
		if strings.HasPrefix(seg.field.layout, ".") {
			part = "." + part
		}
		layout = append(layout, seg.field.layout)
		input = append(input, part)
	}
	t, err := time.Parse(strings.Join(layout, "|"), strings.Join(input, "|"))
	return t, err == nil
}

// format renders t fragment by fragment, copying literals verbatim.
func (f *dateFormat) format(t time.Time) string {
	var b strings.Builder
	for _, seg := range f.segments {
		if seg.field == nil {
			b.WriteString(seg.literal)
			continue
		}
		b.WriteString(strings.TrimPrefix(t.Format(seg.field.layout), "."))
	}
	return b.String()
}

// dateRoundTrip parses value with format and reports whether formatting the
// parsed time with the same format reproduces value exactly.
func dateRoundTrip(value, format string) bool {
	if format == "" {
		return false
	}
	df, err := parseDateFormat(format)
	if err != nil {
		return false
	}
	t, ok := df.parse(value)
	if !ok {
		return false
	}
	return df.format(t) == value
}
