package validation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CheckFunc reports whether value passes a rule configured with options.
// For per-element rules value is always a Scalar; rules listed in
// wholeValueRules receive the field's complete value.
type CheckFunc func(ctx *RuleContext, value Value, options string) bool

// RuleContext gives a rule read access to the form being validated.
type RuleContext struct {
	Field string
	v     *Validator
}

// Lookup returns the current value of another field.
func (c *RuleContext) Lookup(field string) (Value, bool) {
	val, ok := c.v.form[field]
	return val, ok
}

// Length counts characters in the validator's charset.
func (c *RuleContext) Length(s string) int { return c.v.length(s) }

// Match reports whether s matches pattern. Compiled patterns are cached per
// validator; an invalid pattern never matches.
func (c *RuleContext) Match(pattern, s string) bool {
	re, err := c.v.pattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

const (
	ruleRequired = "required"
	ruleRegex    = "regex"
	ruleCount    = "count"
)

// wholeValueRules see the entire multi-value field rather than each element.
var wholeValueRules = map[string]bool{ruleCount: true}

// builtinRules is the static rule table. Every rule except required passes
// empty scalars; required is the only gate against emptiness.
var builtinRules = map[string]CheckFunc{
	"required": checkRequired,
	"match":    skipEmpty(checkMatch),
	"distinct": skipEmpty(checkDistinct),
	"regex":    skipEmpty(checkRegex),
	"length":   skipEmpty(checkLength),
	"chars":    skipEmpty(checkChars),
	"numeric":  skipEmpty(checkNumeric),
	"email":    skipEmpty(checkEmail),
	"phone":    skipEmpty(checkPhone),
	"cnp":      skipEmpty(checkCNP),
	"base64":   skipEmpty(checkBase64),
	"date":     skipEmpty(checkDate),
	"value":    skipEmpty(checkValue),
	"count":    skipEmpty(checkCount),
}

// ValidRules lists the built-in rule names usable in rule expressions,
// sorted. regex is excluded since it has its own registration path.
func ValidRules() []string {
	out := make([]string, 0, len(builtinRules))
	for name := range builtinRules {
		if name != ruleRegex {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func skipEmpty(fn CheckFunc) CheckFunc {
	return func(ctx *RuleContext, value Value, options string) bool {
		if !value.IsSequence() && value.String() == "" {
			return true
		}
		return fn(ctx, value, options)
	}
}

func checkRequired(_ *RuleContext, value Value, _ string) bool {
	if value.IsSequence() {
		return value.Len() > 0
	}
	s := value.String()
	return s != "" && s != "0"
}

func checkMatch(ctx *RuleContext, value Value, other string) bool {
	o, ok := ctx.Lookup(other)
	return ok && value.Equal(o)
}

func checkDistinct(ctx *RuleContext, value Value, others string) bool {
	for _, other := range strings.Split(others, ",") {
		if other != "" && checkMatch(ctx, value, other) {
			return false
		}
	}
	return true
}

func checkRegex(ctx *RuleContext, value Value, pattern string) bool {
	return ctx.Match(pattern, value.String())
}

func checkLength(ctx *RuleContext, value Value, expr string) bool {
	return CountCheck(ctx.Length(value.String()), expr)
}

var charSets = map[string]string{
	"space":  `\x20`,
	"dash":   `\x2D\x5F`,
	"digit":  `\x30-\x39`,
	"symbol": `\x21-\x2F\x3A-\x40\x5B-\x60\x7B-\x7E`,
	"alpha":  `\x41-\x5A\x61-\x7A`,
}

func checkChars(ctx *RuleContext, value Value, options string) bool {
	if options == "" {
		return ctx.Match(`^[\x20-\x7E]+$`, value.String())
	}
	var class strings.Builder
	for _, set := range strings.Split(options, ":") {
		class.WriteString(charSets[set])
	}
	if class.Len() == 0 {
		return false
	}
	return ctx.Match(`^[`+class.String()+`]+$`, value.String())
}

var (
	numericLiteral = regexp.MustCompile(`^\s*[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?\s*$`)
	integerLiteral = regexp.MustCompile(`^-?[0-9]+$`)
	floatLiteral   = regexp.MustCompile(`^-?[0-9]*\.[0-9]+$`)
)

func checkNumeric(_ *RuleContext, value Value, options string) bool {
	s := value.String()
	if !numericLiteral.MatchString(s) {
		return false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}

	kind, sign, nonzero := "any", "any", false
	if options != "" {
		for _, setting := range strings.Split(options, ":") {
			switch setting {
			case "integer", "float":
				kind = setting
			case "positive", "negative":
				sign = setting
			case "nonzero":
				nonzero = true
			}
		}
	}

	switch kind {
	case "integer":
		if !integerLiteral.MatchString(s) {
			return false
		}
	case "float":
		if !floatLiteral.MatchString(s) {
			return false
		}
	}
	switch sign {
	case "positive":
		if n < 0 {
			return false
		}
	case "negative":
		if n > 0 {
			return false
		}
	}
	return !nonzero || n != 0
}

var (
	emailShape  = regexp.MustCompile(`^[^@]{1,64}@[^@]{4,253}$`)
	emailLocal  = regexp.MustCompile(`^(?:[a-zA-Z0-9!#$%&'*+/=?^_\x60{|}~-]\.?)*[a-zA-Z0-9!#$%&'*+/=?^_\x60{|}~-]$`)
	emailDotted = regexp.MustCompile(`^.+\..{2,}$`)
	emailDomain = regexp.MustCompile(`^(?:\[(?:(?:25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])\.){3}(?:25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])\]|(?:(?:[a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9])\.?)*(?:[a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]))$`)
)

// checkEmail applies the local-part grammar, then the dotted-domain check,
// then the hostname / IPv4-literal grammar. The two domain checks are
// independent.
func checkEmail(_ *RuleContext, value Value, _ string) bool {
	s := value.String()
	if !emailShape.MatchString(s) {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	return emailLocal.MatchString(local) &&
		emailDotted.MatchString(domain) &&
		emailDomain.MatchString(domain)
}

var phonePresets = map[string]string{
	"ro":          `0[237][0-9]{8}`,
	"ro-landline": `0[23][0-9]{8}`,
	"ro-mobile":   `07[0-9]{8}`,
}

var phoneTemplate = regexp.MustCompile(`(?i)^[0-9N]+$`)

// phonePattern expands a template such as "07NNNNNNNN" into
// "07[0-9]{8}". N is case-insensitive.
func phonePattern(format string) string {
	if p, ok := phonePresets[format]; ok {
		return p
	}
	if !phoneTemplate.MatchString(format) {
		return ""
	}
	var b strings.Builder
	run := 0
	flush := func() {
		if run > 0 {
			b.WriteString("[0-9]{" + strconv.Itoa(run) + "}")
			run = 0
		}
	}
	for i := 0; i < len(format); i++ {
		if format[i] == 'N' || format[i] == 'n' {
			run++
			continue
		}
		flush()
		b.WriteByte(format[i])
	}
	flush()
	return b.String()
}

func checkPhone(ctx *RuleContext, value Value, format string) bool {
	s := value.String()
	if p := phonePattern(format); p != "" {
		return ctx.Match(`^`+p+`$`, s)
	}
	return len(s) >= 3 && checkNumeric(ctx, value, "integer:positive")
}

var (
	cnpShape   = regexp.MustCompile(`^([1-9])([0-9]{2}(?:0[1-9]|1[012])(?:0[1-9]|[12][0-9]|3[01]))(0[1-9]|[123][0-9]|4[0-6]|5[12])([0-9]{3})([0-9])$`)
	cnpWeights = [12]int{2, 7, 9, 1, 4, 6, 3, 5, 8, 2, 7, 9}
)

// cnpCentury maps the gender/century digit to the birth century.
func cnpCentury(d byte) int {
	switch d {
	case '3', '4':
		return 1800
	case '5', '6':
		return 2000
	default:
		return 1900
	}
}

// checkCNP validates a Romanian personal numeric code: layout, birth date
// and the mod-11 control digit.
func checkCNP(_ *RuleContext, value Value, _ string) bool {
	code := value.String()
	if !cnpShape.MatchString(code) {
		return false
	}
	year := cnpCentury(code[0]) + digits(code[1:3])
	month, day := digits(code[3:5]), digits(code[5:7])
	if !validDate(year, month, day) {
		return false
	}
	sum := 0
	for i, w := range cnpWeights {
		sum += int(code[i]-'0') * w
	}
	control := sum % 11
	if control == 10 {
		control = 1
	}
	return int(code[12]-'0') == control
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

var base64Shape = regexp.MustCompile(`(?i)^(?:[a-z0-9+/]{4})*(?:[a-z0-9+/]{2}==|[a-z0-9+/]{3}=|[a-z0-9+/]{4})$`)

func checkBase64(_ *RuleContext, value Value, _ string) bool {
	return base64Shape.MatchString(value.String())
}

func checkDate(_ *RuleContext, value Value, format string) bool {
	return dateRoundTrip(value.String(), format)
}

func checkValue(_ *RuleContext, value Value, values string) bool {
	s := value.String()
	if !strings.Contains(values, ",") {
		return s == values
	}
	return slices.Contains(strings.Split(values, ","), s)
}

func checkCount(_ *RuleContext, value Value, expr string) bool {
	return CountCheck(value.Len(), expr)
}
