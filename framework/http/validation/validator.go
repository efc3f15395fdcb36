package validation

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ── Types ────────────────────────────────────────────────────────────────────

type ruleEntry struct {
	name    string
	options string
}

// Validator owns a submitted form, the per-field rule chains and the
// resulting errors. One Validator serves one request; it is not safe for
// concurrent use.
type Validator struct {
	form     Form
	defaults Form

	order  []string               // fields in first registration order
	chains map[string][]ruleEntry // field → ordered rules

	errors     map[string]string
	errorOrder []string
	reset      map[string]Value

	ignoreInvalid map[string]bool
	ignoreErrors  map[string]bool

	custom   map[string]CheckFunc
	patterns map[string]*regexp.Regexp

	charset string
	length  lengthFunc
	trim    bool
	debug   bool
	log     *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithCharset sets the charset used by the length rule. Unknown charsets
// fall back to UTF-8 with a diagnostic.
func WithCharset(name string) Option {
	return func(v *Validator) { v.charset = name }
}

// WithTrim controls whether every value is whitespace-trimmed on
// construction (default true).
func WithTrim(on bool) Option {
	return func(v *Validator) { v.trim = on }
}

// WithLogger sets the sink for configuration diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithDebug enables diagnostics on construction.
func WithDebug(on bool) Option {
	return func(v *Validator) { v.debug = on }
}

// New creates a Validator over a copy of form. A nil form is treated as
// empty.
//
//	v := validation.New(form)
//	v.AddRules("email", "required|email")
//	v.AddRules("tags", "count:1-5|chars:alpha:dash")
//	v.Validate(true, nil)
func New(form Form, opts ...Option) *Validator {
	v := &Validator{
		form:          form.Clone(),
		defaults:      Form{},
		chains:        make(map[string][]ruleEntry),
		errors:        make(map[string]string),
		reset:         make(map[string]Value),
		ignoreInvalid: make(map[string]bool),
		ignoreErrors:  make(map[string]bool),
		custom:        make(map[string]CheckFunc),
		patterns:      make(map[string]*regexp.Regexp),
		charset:       DefaultCharset,
		trim:          true,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}

	length, err := charsetLength(v.charset)
	if err != nil {
		v.diagnose(err)
		length, _ = charsetLength(DefaultCharset)
	}
	v.length = length

	if v.trim {
		v.TrimSpaces("")
	}
	return v
}

// Debugging toggles diagnostic output for configuration mistakes.
func (v *Validator) Debugging(on bool) { v.debug = on }

// ── Registration ─────────────────────────────────────────────────────────────

// AddRules registers a pipe-separated rule expression for field:
//
//	v.AddRules("age", "required|numeric:integer:positive|length:1-3")
//
// Everything after the first ':' of a rule is handed to the rule verbatim.
// Unknown rules and regex are skipped with a diagnostic. AddRules returns
// false only when field or expression is empty.
func (v *Validator) AddRules(field, expression string) bool {
	ok := true
	if field == "" {
		v.diagnose(ErrMissingField)
		ok = false
	}
	if expression == "" {
		v.diagnose(ErrMissingRules, zap.String("field", field))
		ok = false
	}
	if !ok {
		return false
	}

	for _, part := range strings.Split(expression, "|") {
		name, options, _ := strings.Cut(part, ":")
		switch {
		case name == ruleRegex:
			v.diagnose(ErrRegexSeparately, zap.String("field", field))
		case v.lookup(name) == nil:
			v.diagnose(ErrUnknownRule, zap.String("field", field), zap.String("rule", name))
		default:
			v.addRule(field, name, options)
		}
	}
	return true
}

// AddRegexRule registers a regex rule for field. The pattern may be a bare
// RE2 expression or delimited with flags ("/^[a-z]+$/i"). The pattern may
// contain '|' and ':' freely.
func (v *Validator) AddRegexRule(field, pattern string) bool {
	ok := true
	if field == "" {
		v.diagnose(ErrMissingField)
		ok = false
	}
	if pattern == "" {
		v.diagnose(ErrMissingPattern, zap.String("field", field))
		ok = false
	}
	if !ok {
		return false
	}
	if _, err := v.pattern(pattern); err != nil {
		v.diagnose(err, zap.String("field", field))
		return false
	}
	v.addRule(field, ruleRegex, pattern)
	return true
}

// Extend registers a custom rule on this validator only. Custom rules see
// empty values too. Built-in names cannot be replaced.
func (v *Validator) Extend(name string, fn CheckFunc) bool {
	if name == "" || fn == nil || strings.ContainsAny(name, "|:") {
		v.diagnose(ErrMissingRules, zap.String("rule", name))
		return false
	}
	if _, builtin := builtinRules[name]; builtin {
		v.diagnose(ErrReservedRule, zap.String("rule", name))
		return false
	}
	v.custom[name] = fn
	return true
}

func (v *Validator) addRule(field, name, options string) {
	chain, seen := v.chains[field]
	if !seen {
		v.order = append(v.order, field)
	}
	for i := range chain {
		if chain[i].name == name {
			chain[i].options = options
			return
		}
	}
	v.chains[field] = append(chain, ruleEntry{name: name, options: options})
}

func (v *Validator) lookup(name string) CheckFunc {
	if fn, ok := builtinRules[name]; ok {
		return fn
	}
	return v.custom[name]
}

// ── Core validation loop ─────────────────────────────────────────────────────

// Validate applies every registered rule. A non-empty defaults form
// replaces the current defaults. With resetInvalid, invalid fields are
// overwritten with their default (or an empty value of the same shape).
func (v *Validator) Validate(resetInvalid bool, defaults Form) {
	if len(defaults) > 0 {
		v.defaults = defaults.Clone()
	}

	for _, field := range v.order {
		for _, rule := range v.chains[field] {
			if _, failed := v.errors[field]; failed {
				break
			}
			v.apply(field, rule)
		}
	}

	if resetInvalid {
		for field, val := range v.reset {
			v.form[field] = val.Clone()
		}
	}
}

func (v *Validator) apply(field string, rule ruleEntry) {
	if rule.name == ruleRequired {
		if _, present := v.form[field]; !present {
			v.form[field] = Scalar("")
		}
	}
	value, present := v.form[field]
	if !present {
		return
	}

	check := v.lookup(rule.name)
	ctx := &RuleContext{Field: field, v: v}

	if !value.IsSequence() || wholeValueRules[rule.name] {
		if !check(ctx, value, rule.options) {
			v.fail(field, rule.name)
		}
		return
	}

	items := value.Items()
	if len(items) == 0 {
		// an empty sequence is checked as one empty element
		if !check(ctx, Scalar(""), rule.options) {
			v.fail(field, rule.name)
		}
		return
	}
	kept := items[:0:0]
	for i, item := range items {
		if check(ctx, Scalar(item), rule.options) {
			kept = append(kept, item)
			continue
		}
		if v.ignoreInvalid[field] {
			continue
		}
		kept = append(kept, items[i:]...)
		v.form[field] = Sequence(kept...)
		v.fail(field, rule.name)
		return
	}
	v.form[field] = Sequence(kept...)

	if v.ignoreInvalid[field] && len(kept) == 0 {
		v.fail(field, rule.name)
	}
}

func (v *Validator) fail(field, rule string) {
	v.setError(field, rule)
	v.reset[field] = v.defaultFor(field)
}

func (v *Validator) setError(field, label string) {
	if _, exists := v.errors[field]; !exists {
		v.errorOrder = append(v.errorOrder, field)
	}
	v.errors[field] = label
}

// defaultFor is the configured default, else an empty value shaped like
// the current one.
func (v *Validator) defaultFor(field string) Value {
	if d, ok := v.defaults[field]; ok {
		return d.Clone()
	}
	if cur, ok := v.form[field]; ok {
		return cur.empty()
	}
	return Scalar("")
}

// ── Queries ──────────────────────────────────────────────────────────────────

// HasError reports whether field has an error, ignored or not.
func (v *Validator) HasError(field string) bool {
	return v.errors[field] != ""
}

// HasErrors reports whether any non-ignored field has an error.
func (v *Validator) HasErrors() bool {
	return len(v.Errors()) > 0
}

// Errors returns field → failed rule, minus ignored fields.
func (v *Validator) Errors() map[string]string {
	out := make(map[string]string, len(v.errors))
	for field, rule := range v.errors {
		if !v.ignoreErrors[field] {
			out[field] = rule
		}
	}
	return out
}

// Error returns the failed rule for field, or "".
func (v *Validator) Error(field string) string { return v.errors[field] }

// Failures lists non-ignored failures in the order they were recorded.
func (v *Validator) Failures() []RuleFailure {
	out := make([]RuleFailure, 0, len(v.errorOrder))
	for _, field := range v.errorOrder {
		if !v.ignoreErrors[field] {
			out = append(out, RuleFailure{Field: field, Rule: v.errors[field]})
		}
	}
	return out
}

// AddError records an error for field, e.g. a cross-field business rule
// outside the rule grammar. It replaces any existing error.
func (v *Validator) AddError(field, label string) bool {
	v.setError(field, label)
	return true
}

// Form returns a copy of the current values.
func (v *Validator) Form() Form { return v.form.Clone() }

// Value returns the current value of field.
func (v *Validator) Value(field string) (Value, bool) {
	val, ok := v.form[field]
	return val.Clone(), ok
}

// SetToDefault overwrites field with its default.
func (v *Validator) SetToDefault(field string) bool {
	v.form[field] = v.defaultFor(field)
	return true
}

// IgnoreInvalid drops failing elements of the given multi-value fields
// instead of failing the whole field. Fields that are not currently
// sequences are left alone.
func (v *Validator) IgnoreInvalid(fields ...string) bool {
	for _, field := range fields {
		if val, ok := v.form[field]; ok && val.IsSequence() {
			v.ignoreInvalid[field] = true
		}
	}
	return true
}

// IgnoreErrors hides the given fields from HasErrors, Errors and Failures.
// HasError still reports them.
func (v *Validator) IgnoreErrors(fields ...string) bool {
	for _, field := range fields {
		v.ignoreErrors[field] = true
	}
	return true
}

// ── Diagnostics ──────────────────────────────────────────────────────────────

func (v *Validator) pattern(p string) (*regexp.Regexp, error) {
	if re, ok := v.patterns[p]; ok {
		return re, nil
	}
	re, err := compilePattern(p)
	if err != nil {
		return nil, err
	}
	v.patterns[p] = re
	return re, nil
}

func (v *Validator) diagnose(err error, fields ...zap.Field) {
	if !v.debug {
		return
	}
	v.log.Debug("form validation configuration", append(fields, zap.Error(err))...)
}
