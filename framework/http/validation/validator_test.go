package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func scalars(kv ...string) validation.Form {
	f := validation.Form{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[kv[i]] = validation.Scalar(kv[i+1])
	}
	return f
}

// pass asserts that value passes rules on field "f".
func pass(t *testing.T, label, rules, value string) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.New(scalars("f", value), validation.WithTrim(false))
		require.True(t, v.AddRules("f", rules))
		v.Validate(false, nil)
		assert.False(t, v.HasError("f"), "expected PASS for %q with %q, got error %q", value, rules, v.Error("f"))
	})
}

// fail asserts that value fails rules on field "f" with the given rule.
func fail(t *testing.T, label, rules, value, rule string) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.New(scalars("f", value), validation.WithTrim(false))
		require.True(t, v.AddRules("f", rules))
		v.Validate(false, nil)
		assert.Equal(t, rule, v.Error("f"), "expected FAIL for %q with %q", value, rules)
	})
}

// ── registration ─────────────────────────────────────────────────────────────

func TestAddRules_MissingInput(t *testing.T) {
	v := validation.New(nil)
	assert.False(t, v.AddRules("", "required"))
	assert.False(t, v.AddRules("name", ""))
	assert.True(t, v.AddRules("name", "required"))
}

func TestAddRules_SkipsUnknownAndRegex(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := validation.New(scalars("name", "x"), validation.WithLogger(zap.New(core)), validation.WithDebug(true))

	assert.True(t, v.AddRules("name", "bogus|regex:^a$|required"))
	v.Validate(true, nil)

	assert.False(t, v.HasErrors(), "regex and bogus must not be registered")
	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, validation.ErrUnknownRule.Error(), entries[0].ContextMap()["error"])
	assert.Equal(t, "bogus", entries[0].ContextMap()["rule"])
	assert.Equal(t, validation.ErrRegexSeparately.Error(), entries[1].ContextMap()["error"])
}

func TestAddRules_DiagnosticsSilentWithoutDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := validation.New(nil, validation.WithLogger(zap.New(core)))
	v.AddRules("name", "bogus")
	assert.Equal(t, 0, logs.Len())

	v.Debugging(true)
	v.AddRules("name", "bogus")
	assert.Equal(t, 1, logs.Len())
}

func TestExtend(t *testing.T) {
	even := func(_ *validation.RuleContext, val validation.Value, _ string) bool {
		return len(val.String())%2 == 0
	}
	v := validation.New(scalars("a", "xy", "b", "xyz", "c", ""))
	assert.False(t, v.Extend("email", even), "built-in names are reserved")
	assert.False(t, v.Extend("bad|name", even))
	require.True(t, v.Extend("even", even))

	v.AddRules("a", "even")
	v.AddRules("b", "even")
	v.AddRules("c", "even")
	v.Validate(false, nil)

	assert.False(t, v.HasError("a"))
	assert.Equal(t, "even", v.Error("b"))
	assert.False(t, v.HasError("c"), "custom rules see empty values too")
	assert.Equal(t, "The b field is invalid (even).", validation.Message(validation.RuleFailure{Field: "b", Rule: "even"}))
}

func TestAddRegexRule(t *testing.T) {
	v := validation.New(scalars("code", "AB-12", "slug", "a|b"))
	assert.False(t, v.AddRegexRule("", "^a$"))
	assert.False(t, v.AddRegexRule("code", ""))
	assert.False(t, v.AddRegexRule("code", "/[unclosed/"))

	require.True(t, v.AddRegexRule("code", `/^[a-z]{2}-\d+$/i`))
	require.True(t, v.AddRegexRule("slug", `^a\|b$`))
	v.Validate(true, nil)

	assert.False(t, v.HasErrors(), "errors: %v", v.Errors())
}

func TestAddRegexRule_NonMatching(t *testing.T) {
	v := validation.New(scalars("code", "12-AB"))
	require.True(t, v.AddRegexRule("code", `/^[a-z]{2}-\d+$/i`))
	v.Validate(true, nil)
	assert.Equal(t, "regex", v.Error("code"))
}

func TestValidRules(t *testing.T) {
	assert.Equal(t, []string{
		"base64", "chars", "cnp", "count", "date", "distinct", "email",
		"length", "match", "numeric", "phone", "required", "value",
	}, validation.ValidRules())
}

// ── validate loop ────────────────────────────────────────────────────────────

func TestValidate_RequiredSynthesizesMissingField(t *testing.T) {
	v := validation.New(validation.Form{})
	v.AddRules("name", "required")
	v.Validate(true, nil)

	assert.Equal(t, "required", v.Error("name"))
	val, ok := v.Value("name")
	assert.True(t, ok, "field must be present after required ran")
	assert.Equal(t, "", val.String())
}

func TestValidate_OtherRulesSkipMissingField(t *testing.T) {
	v := validation.New(validation.Form{})
	v.AddRules("name", "email|length:5")
	v.Validate(true, nil)

	assert.False(t, v.HasErrors())
	_, ok := v.Value("name")
	assert.False(t, ok)
}

func TestValidate_ShortCircuit(t *testing.T) {
	calls := 0
	v := validation.New(scalars("name", ""))
	require.True(t, v.Extend("spy", func(*validation.RuleContext, validation.Value, string) bool {
		calls++
		return true
	}))
	v.AddRules("name", "required|spy")
	v.Validate(true, nil)

	assert.Equal(t, 0, calls, "second rule must not run once the field failed")
	assert.Equal(t, "required", v.Error("name"))
}

func TestValidate_RuleOrderIsRegistrationOrder(t *testing.T) {
	v := validation.New(scalars("n", "abc"))
	v.AddRules("n", "length:1")
	v.AddRegexRule("n", "^[0-9]+$")
	v.Validate(true, nil)
	assert.Equal(t, "length", v.Error("n"))

	v = validation.New(scalars("n", "abc"))
	v.AddRegexRule("n", "^[0-9]+$")
	v.AddRules("n", "length:1")
	v.Validate(true, nil)
	assert.Equal(t, "regex", v.Error("n"))
}

func TestValidate_ReRegisteringRuleKeepsPosition(t *testing.T) {
	v := validation.New(scalars("n", "abcd"))
	v.AddRules("n", "length:4|numeric")
	v.AddRules("n", "length:2")
	v.Validate(true, nil)
	assert.Equal(t, "length", v.Error("n"))
}

func TestValidate_Idempotent(t *testing.T) {
	v := validation.New(scalars("email", "nope", "name", "Alice"))
	v.AddRules("email", "required|email")
	v.AddRules("name", "required|length:2-10")

	v.Validate(true, nil)
	first := v.Errors()
	v.Validate(true, nil)

	assert.Equal(t, first, v.Errors())
	assert.Equal(t, map[string]string{"email": "email"}, first)
}

func TestValidate_ResetInvalid(t *testing.T) {
	v := validation.New(scalars("email", "nope", "name", "Alice"))
	v.AddRules("email", "email")
	v.AddRules("name", "required")
	v.Validate(true, scalars("email", "you@example.com"))

	email, _ := v.Value("email")
	name, _ := v.Value("name")
	assert.Equal(t, "you@example.com", email.String())
	assert.Equal(t, "Alice", name.String())
}

func TestValidate_NoResetKeepsValues(t *testing.T) {
	v := validation.New(scalars("email", "nope"))
	v.AddRules("email", "email")
	v.Validate(false, nil)

	email, _ := v.Value("email")
	assert.Equal(t, "nope", email.String())
	assert.True(t, v.HasError("email"))
}

func TestValidate_ResetWithoutDefaultKeepsShape(t *testing.T) {
	v := validation.New(validation.Form{
		"tags": validation.Sequence("ok", "not ok!"),
		"name": validation.Scalar("x!"),
	})
	v.AddRules("tags", "chars:alpha")
	v.AddRules("name", "chars:alpha")
	v.Validate(true, nil)

	tags, _ := v.Value("tags")
	name, _ := v.Value("name")
	assert.True(t, tags.IsSequence())
	assert.Equal(t, 0, tags.Len())
	assert.False(t, name.IsSequence())
	assert.Equal(t, "", name.String())
}

func TestValidate_TrimOnConstruction(t *testing.T) {
	v := validation.New(validation.Form{
		"name": validation.Scalar("  Alice \n"),
		"tags": validation.Sequence(" a ", "b\t"),
	})
	name, _ := v.Value("name")
	tags, _ := v.Value("tags")
	assert.Equal(t, "Alice", name.String())
	assert.Equal(t, []string{"a", "b"}, tags.Items())

	v = validation.New(scalars("name", " x "), validation.WithTrim(false))
	name, _ = v.Value("name")
	assert.Equal(t, " x ", name.String())
}

func TestValidate_ConstructionCopiesForm(t *testing.T) {
	in := scalars("email", "nope")
	v := validation.New(in)
	v.AddRules("email", "email")
	v.Validate(true, nil)

	assert.Equal(t, "nope", in["email"].String())
}

// ── multi-value fields ───────────────────────────────────────────────────────

func TestValidate_MultiValue_FailsWholeField(t *testing.T) {
	v := validation.New(validation.Form{"tags": validation.Sequence("valid", "", "valid2")})
	v.AddRules("tags", "required")
	v.Validate(true, nil)

	assert.Equal(t, "required", v.Error("tags"))
	tags, _ := v.Value("tags")
	assert.Equal(t, 0, tags.Len())
}

func TestValidate_MultiValue_IgnoreInvalidDropsElements(t *testing.T) {
	v := validation.New(validation.Form{"tags": validation.Sequence("valid", "", "valid2")})
	v.AddRules("tags", "required")
	v.IgnoreInvalid("tags")
	v.Validate(true, nil)

	assert.False(t, v.HasError("tags"))
	tags, _ := v.Value("tags")
	assert.Equal(t, []string{"valid", "valid2"}, tags.Items())
}

func TestValidate_MultiValue_IgnoreInvalidEmptied(t *testing.T) {
	v := validation.New(validation.Form{"tags": validation.Sequence("")})
	v.AddRules("tags", "required")
	v.IgnoreInvalid("tags")
	v.Validate(true, nil)

	assert.Equal(t, "required", v.Error("tags"))
}

func TestValidate_MultiValue_EmptySequenceRunsOnce(t *testing.T) {
	v := validation.New(validation.Form{"tags": validation.Sequence()})
	v.AddRules("tags", "required")
	v.Validate(true, nil)
	assert.Equal(t, "required", v.Error("tags"))

	v = validation.New(validation.Form{"tags": validation.Sequence()})
	v.AddRules("tags", "email")
	v.Validate(true, nil)
	assert.False(t, v.HasError("tags"), "empty element passes non-required rules")
	tags, _ := v.Value("tags")
	assert.True(t, tags.IsSequence())
	assert.Zero(t, tags.Len(), "no phantom element is added")
}

func TestValidate_MultiValue_CountSeesWholeValue(t *testing.T) {
	v := validation.New(validation.Form{"tags": validation.Sequence("a", "b", "c")})
	v.AddRules("tags", "count:1-2")
	v.Validate(true, nil)
	assert.Equal(t, "count", v.Error("tags"))

	v = validation.New(validation.Form{"tags": validation.Sequence("a", "b")})
	v.AddRules("tags", "count:1-2|chars:alpha")
	v.Validate(true, nil)
	assert.False(t, v.HasErrors())

	v = validation.New(validation.Form{"tags": validation.Sequence()})
	v.AddRules("tags", "count:>=1")
	v.Validate(true, nil)
	assert.Equal(t, "count", v.Error("tags"))
}

func TestIgnoreInvalid_OnlySequences(t *testing.T) {
	v := validation.New(validation.Form{"name": validation.Scalar("")})
	v.AddRules("name", "required")
	v.IgnoreInvalid("name")
	v.Validate(true, nil)
	assert.Equal(t, "required", v.Error("name"))
}

// ── error queries ────────────────────────────────────────────────────────────

func TestIgnoreErrors(t *testing.T) {
	v := validation.New(scalars("a", "", "b", "x"))
	v.AddRules("a", "required")
	v.AddRules("b", "required")
	v.IgnoreErrors("a")
	v.Validate(true, nil)

	assert.True(t, v.HasError("a"), "per-field query still sees ignored errors")
	assert.False(t, v.HasErrors())
	assert.Empty(t, v.Errors())
	assert.Empty(t, v.Failures())
}

func TestAddError(t *testing.T) {
	v := validation.New(scalars("start", "2024-01-02", "end", "2024-01-01"))
	v.Validate(true, nil)
	assert.False(t, v.HasErrors())

	assert.True(t, v.AddError("end", "before_start"))
	assert.True(t, v.HasErrors())
	assert.Equal(t, []validation.RuleFailure{{Field: "end", Rule: "before_start"}}, v.Failures())
}

func TestFailures_Order(t *testing.T) {
	v := validation.New(scalars("b", "", "a", ""))
	v.AddRules("b", "required")
	v.AddRules("a", "required")
	v.Validate(true, nil)

	assert.Equal(t, []validation.RuleFailure{
		{Field: "b", Rule: "required"},
		{Field: "a", Rule: "required"},
	}, v.Failures())
}

func TestSetToDefault(t *testing.T) {
	v := validation.New(validation.Form{
		"country": validation.Scalar("XX"),
		"tags":    validation.Sequence("a"),
		"note":    validation.Scalar("hi"),
	})
	v.Validate(false, validation.Form{"country": validation.Scalar("RO")})

	v.SetToDefault("country")
	v.SetToDefault("tags")
	v.SetToDefault("note")

	country, _ := v.Value("country")
	tags, _ := v.Value("tags")
	note, _ := v.Value("note")
	assert.Equal(t, "RO", country.String())
	assert.True(t, tags.IsSequence())
	assert.Equal(t, 0, tags.Len())
	assert.Equal(t, "", note.String())
}

// ── sanitising ───────────────────────────────────────────────────────────────

func TestHTMLSanitize(t *testing.T) {
	v := validation.New(validation.Form{
		"bio":  validation.Scalar(`<b>"hi"</b> & bye`),
		"tags": validation.Sequence("<i>", "ok"),
		"raw":  validation.Scalar("<keep>"),
	})
	v.HTMLSanitize("bio", "tags")

	bio, _ := v.Value("bio")
	tags, _ := v.Value("tags")
	raw, _ := v.Value("raw")
	assert.Equal(t, "&lt;b&gt;&#34;hi&#34;&lt;/b&gt; &amp; bye", bio.String())
	assert.Equal(t, []string{"&lt;i&gt;", "ok"}, tags.Items())
	assert.Equal(t, "<keep>", raw.String())

	v.HTMLSanitize()
	raw, _ = v.Value("raw")
	assert.Equal(t, "&lt;keep&gt;", raw.String())
}

func TestTrimSpaces_CustomChars(t *testing.T) {
	v := validation.New(validation.Form{
		"a": validation.Scalar("--x--"),
		"b": validation.Sequence("-y", "z-"),
	}, validation.WithTrim(false))
	v.TrimSpaces("-")

	a, _ := v.Value("a")
	b, _ := v.Value("b")
	assert.Equal(t, "x", a.String())
	assert.Equal(t, []string{"y", "z"}, b.Items())
}

// ── charset ──────────────────────────────────────────────────────────────────

func TestLength_Charset(t *testing.T) {
	// "ăîș" is 3 characters but 6 bytes in UTF-8.
	pass(t, "utf-8 runes", "length:3", "ăîș")

	// The same bytes read as ISO-8859-2 are 6 characters.
	v := validation.New(scalars("f", "ăîș"), validation.WithCharset("iso-8859-2"))
	v.AddRules("f", "length:6")
	v.Validate(true, nil)
	assert.False(t, v.HasErrors())

	// Unknown charsets fall back to UTF-8.
	v = validation.New(scalars("f", "ăîș"), validation.WithCharset("klingon"))
	v.AddRules("f", "length:3")
	v.Validate(true, nil)
	assert.False(t, v.HasErrors())
}
