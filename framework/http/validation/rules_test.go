package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// ── empty values ─────────────────────────────────────────────────────────────

func TestRules_EmptyValuePassesEveryRuleButRequired(t *testing.T) {
	options := map[string]string{
		"match":    "other",
		"distinct": "other",
		"length":   "5",
		"chars":    "digit",
		"numeric":  "integer:nonzero",
		"email":    "",
		"phone":    "ro",
		"cnp":      "",
		"base64":   "",
		"date":     "d/m/Y",
		"value":    "a,b",
		"count":    "3",
	}
	for _, rule := range validation.ValidRules() {
		if rule == "required" {
			fail(t, "required", "required", "", "required")
			continue
		}
		expr := rule
		if opt := options[rule]; opt != "" {
			expr += ":" + opt
		}
		pass(t, rule, expr, "")
	}
}

// ── required ─────────────────────────────────────────────────────────────────

func TestRule_Required(t *testing.T) {
	pass(t, "non-empty", "required", "Alice")
	pass(t, "space kept when not trimmed", "required", " ")
	fail(t, "empty", "required", "", "required")
	fail(t, "zero is empty", "required", "0", "required")
}

// ── match / distinct ─────────────────────────────────────────────────────────

func TestRule_Match(t *testing.T) {
	v := validation.New(scalars("password", "secret", "confirm", "secret", "wrong", "nope"))
	v.AddRules("confirm", "match:password")
	v.AddRules("wrong", "match:password")
	v.AddRules("ghost", "match:missing")
	v.Validate(true, nil)

	assert.False(t, v.HasError("confirm"))
	assert.Equal(t, "match", v.Error("wrong"))
	assert.False(t, v.HasError("ghost"), "absent field is not evaluated")
}

func TestRule_MatchMissingOther(t *testing.T) {
	v := validation.New(scalars("confirm", "secret"))
	v.AddRules("confirm", "match:password")
	v.Validate(true, nil)
	assert.Equal(t, "match", v.Error("confirm"))
}

func TestRule_Distinct(t *testing.T) {
	v := validation.New(scalars(
		"old", "a", "older", "b",
		"fresh", "c", "reused", "b", "single", "a",
	))
	v.AddRules("fresh", "distinct:old,older")
	v.AddRules("reused", "distinct:old,,older")
	v.AddRules("single", "distinct:old")
	v.Validate(true, nil)

	assert.False(t, v.HasError("fresh"))
	assert.Equal(t, "distinct", v.Error("reused"))
	assert.Equal(t, "distinct", v.Error("single"))
}

// ── length / count ───────────────────────────────────────────────────────────

func TestCountCheck(t *testing.T) {
	tests := []struct {
		n    int
		expr string
		want bool
	}{
		{5, "3-5", true},
		{6, "3-5", false},
		{3, "3-5", true},
		{2, "3-5", false},
		{10, ">=10", true},
		{9, ">=10", false},
		{10, ">10", false},
		{9, "<10", true},
		{10, "<10", false},
		{10, "<=10", true},
		{7, "7", true},
		{8, "7", false},
		{0, "0", true},
		{5, "=5", false},
		{5, "", false},
		{5, "five", false},
		{5, "3 - 5", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.CountCheck(tt.n, tt.expr), "CountCheck(%d, %q)", tt.n, tt.expr)
		})
	}
}

func TestRule_Length(t *testing.T) {
	pass(t, "exact", "length:3", "abc")
	pass(t, "range", "length:2-4", "abcd")
	pass(t, "unicode runes", "length:3", "日本語")
	fail(t, "too long", "length:<3", "abc", "length")
	fail(t, "malformed expression", "length:abc", "abc", "length")
}

func TestRule_CountScalar(t *testing.T) {
	pass(t, "scalar counts as one", "count:1", "x")
	fail(t, "scalar is not two", "count:2", "x", "count")
}

// ── chars ────────────────────────────────────────────────────────────────────

func TestRule_Chars(t *testing.T) {
	pass(t, "printable default", "chars", "Hello, World! ~")
	fail(t, "non-ascii default", "chars", "Ăla", "chars")
	fail(t, "control char default", "chars", "a\tb", "chars")

	pass(t, "alpha", "chars:alpha", "Hello")
	fail(t, "alpha rejects digit", "chars:alpha", "Hello1", "chars")
	pass(t, "alpha digit", "chars:alpha:digit", "Hello1")
	pass(t, "alpha space dash", "chars:alpha:space:dash", "first-name last_name")
	pass(t, "symbol", "chars:symbol", "!@#$%^&*()[]{}")
	fail(t, "unknown set only", "chars:emoji", "abc", "chars")
}

// ── numeric ──────────────────────────────────────────────────────────────────

func TestRule_Numeric(t *testing.T) {
	pass(t, "integer", "numeric", "42")
	pass(t, "float", "numeric", "3.14")
	pass(t, "negative", "numeric", "-5.5")
	pass(t, "exponent", "numeric", "1e3")
	pass(t, "leading dot", "numeric", ".5")
	fail(t, "letters", "numeric", "abc", "numeric")
	fail(t, "mixed", "numeric", "12abc", "numeric")
	fail(t, "hex", "numeric", "0x1A", "numeric")

	pass(t, "integer flag", "numeric:integer", "-12")
	fail(t, "integer flag rejects float", "numeric:integer", "1.5", "numeric")
	pass(t, "float flag", "numeric:float", "1.5")
	pass(t, "float flag without leading digit", "numeric:float", "-.5")
	fail(t, "float flag rejects integer", "numeric:float", "15", "numeric")

	pass(t, "positive", "numeric:positive", "3")
	pass(t, "positive allows zero", "numeric:positive", "0")
	fail(t, "positive rejects negative", "numeric:positive", "-3", "numeric")
	pass(t, "negative", "numeric:negative", "-3")
	fail(t, "negative rejects positive", "numeric:negative", "3", "numeric")

	fail(t, "nonzero", "numeric:nonzero", "0", "numeric")
	fail(t, "nonzero float zero", "numeric:nonzero", "0.0", "numeric")
	pass(t, "combined flags", "numeric:integer:positive:nonzero", "7")
	fail(t, "combined flags fail sign", "numeric:integer:positive:nonzero", "-7", "numeric")
}

// ── email ────────────────────────────────────────────────────────────────────

func TestRule_Email(t *testing.T) {
	pass(t, "simple", "email", "user@example.com")
	pass(t, "subdomain", "email", "user@mail.example.co.uk")
	pass(t, "dotted local", "email", "first.last+tag@example.org")
	pass(t, "ipv4 literal with dots", "email", "user@[192.168.1.1]")

	fail(t, "no @", "email", "notanemail", "email")
	fail(t, "no domain", "email", "user@", "email")
	fail(t, "short domain", "email", "user@a.b", "email")
	fail(t, "single char tld", "email", "user@example.c", "email")
	fail(t, "double dot local", "email", "a..b@example.com", "email")
	fail(t, "trailing dot local", "email", "ab.@example.com", "email")
	fail(t, "two @", "email", "a@b@example.com", "email")
	fail(t, "bad ipv4 literal", "email", "user@[999.1.1.1]", "email")
	fail(t, "underscore domain", "email", "user@exa_mple.com", "email")
}

// ── phone ────────────────────────────────────────────────────────────────────

func TestRule_Phone(t *testing.T) {
	pass(t, "wildcard template", "phone:07NNNNNNNN", "0712345678")
	fail(t, "wildcard too short", "phone:07NNNNNNNN", "071234567", "phone")
	fail(t, "wildcard wrong prefix", "phone:07NNNNNNNN", "08123456789", "phone")
	pass(t, "lowercase placeholder", "phone:07nnnnnnnn", "0712345678")
	pass(t, "mixed template", "phone:NN7NN", "12734")

	pass(t, "ro mobile", "phone:ro", "0722123456")
	pass(t, "ro landline", "phone:ro", "0212345678")
	fail(t, "ro bad prefix", "phone:ro", "0812345678", "phone")
	pass(t, "ro-landline", "phone:ro-landline", "0312345678")
	fail(t, "ro-landline rejects mobile", "phone:ro-landline", "0712345678", "phone")
	pass(t, "ro-mobile", "phone:ro-mobile", "0798765432")

	pass(t, "fallback digits", "phone", "112")
	fail(t, "fallback too short", "phone", "12", "phone")
	fail(t, "fallback negative", "phone:+40", "-123", "phone")
	fail(t, "fallback letters", "phone", "abc", "phone")
}

// ── cnp ──────────────────────────────────────────────────────────────────────

func TestRule_CNP(t *testing.T) {
	pass(t, "male 1985", "cnp", "1850101123451")
	pass(t, "male 2001", "cnp", "5010123123451")
	pass(t, "female 1996 leap day", "cnp", "2960229400011")
	pass(t, "female 2000 leap day", "cnp", "6000229400010")

	fail(t, "flipped control digit", "cnp", "1850101123452", "cnp")
	fail(t, "1900 is not a leap year", "cnp", "1000229400011", "cnp")
	fail(t, "twelve digits", "cnp", "185010112345", "cnp")
	fail(t, "bad month", "cnp", "1851301123451", "cnp")
	fail(t, "bad county", "cnp", "1850101993451", "cnp")
	fail(t, "letters", "cnp", "18501011234a1", "cnp")
}

// ── base64 ───────────────────────────────────────────────────────────────────

func TestRule_Base64(t *testing.T) {
	pass(t, "no padding", "base64", "aGVsbG8h")
	pass(t, "one pad", "base64", "aGVsbG8=")
	pass(t, "two pad", "base64", "aGVsbA==")
	fail(t, "bad length", "base64", "aGVsbG8", "base64")
	fail(t, "bad chars", "base64", "aGVs*G8=", "base64")
}

// ── date ─────────────────────────────────────────────────────────────────────

func TestRule_Date(t *testing.T) {
	pass(t, "day first slashes", "date:d/m/Y", "23/05/2012")
	fail(t, "impossible day", "date:d/m/Y", "31/02/2012", "date")
	fail(t, "no leading zero", "date:d/m/Y", "3/05/2012", "date")
	pass(t, "no leading zero format", "date:j/n/Y", "3/5/2012")

	pass(t, "iso", "date:Y-m-d", "2012-05-23")
	fail(t, "iso wrong order", "date:Y-m-d", "23-05-2012", "date")
	pass(t, "dots", "date:d.m.Y", "23.05.2012")
	pass(t, "month first", "date:m/d/Y", "05/23/2012")
	fail(t, "month first swapped", "date:m/d/Y", "23/05/2012", "date")
	pass(t, "datetime", "date:Y-m-d H-i-s", "2012-05-23 14-30-00")
	pass(t, "month name", "date:j F Y", "23 May 2012")
	pass(t, "escaped literal", `date:Y\TH`, "2012T14")

	fail(t, "unsupported format char", "date:Y-W", "2012-21", "date")
	fail(t, "wrong weekday", "date:D, d M Y", "Mon, 23 May 2012", "date")
	pass(t, "right weekday", "date:D, d M Y", "Wed, 23 May 2012")
}

func TestRule_DateLiterals(t *testing.T) {
	pass(t, "literal digit", "date:Y-m-d 1", "2012-05-23 1")
	fail(t, "literal digit differs", "date:Y-m-d 1", "2012-05-23 2", "date")
	pass(t, "escaped month name", `date:\J\a\n Y`, "Jan 2012")
	fail(t, "escaped month name is literal", `date:\J\a\n Y`, "Feb 2012", "date")
	pass(t, "escaped weekday", `date:\M\o\n d.m.Y`, "Mon 23.05.2012")
	pass(t, "underscore before day", "date:Y_j", "2012_5")
	pass(t, "milliseconds", "date:H:i:s.v", "14:30:00.125")
	pass(t, "twelve hour", "date:g:i a", "2:05 pm")
	fail(t, "empty format", "date:", "2012", "date")
}

// ── value ────────────────────────────────────────────────────────────────────

func TestRule_Value(t *testing.T) {
	pass(t, "single", "value:yes", "yes")
	fail(t, "single mismatch", "value:yes", "no", "value")
	pass(t, "list", "value:admin,editor,viewer", "editor")
	fail(t, "list mismatch", "value:admin,editor", "root", "value")
	fail(t, "no partial match", "value:admin,editor", "admin,editor", "value")
}
