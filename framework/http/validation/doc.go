// Package validation provides rule-based validation of submitted forms.
//
// # Overview
//
// A Validator owns a copy of the submitted values, a rule chain per field and
// the resulting errors. Rules are written as pipe-separated strings; the part
// after the first ':' is handed verbatim to the rule.
//
// # Basic Usage
//
//	v := validation.New(validation.Form{
//	    "email":  validation.Scalar("alice@example.com"),
//	    "phone":  validation.Scalar("0712345678"),
//	    "tags":   validation.Sequence("go", "", "forms"),
//	})
//	v.AddRules("email", "required|email")
//	v.AddRules("phone", "phone:07NNNNNNNN")
//	v.AddRules("tags", "required|chars:alpha:dash")
//	v.AddRegexRule("code", `/^[A-Z]{2}-\d+$/i`)
//	v.IgnoreInvalid("tags")
//
//	v.Validate(true, validation.Form{"phone": validation.Scalar("07")})
//	if v.HasErrors() {
//	    // v.Errors() → map[field]rule, e.g. {"phone": "phone"}
//	}
//
// # Available Rules
//
//   - required: non-empty; "" and "0" fail
//   - match:field: equals another field
//   - distinct:a,b: differs from every listed field
//   - length:expr: character count satisfies a count expression
//   - chars:set:set: only characters from space, dash, digit, symbol, alpha;
//     printable ASCII when no set is given
//   - numeric:flags: number; flags integer, float, positive, negative, nonzero
//   - email: local@domain address
//   - phone:fmt: ro, ro-landline, ro-mobile or a digit template with N
//     placeholders ("07NNNNNNNN")
//   - cnp: Romanian personal numeric code
//   - base64: padded base64
//   - date:fmt: round-trips through a PHP-style date format ("d/m/Y")
//   - value:a,b: one of the listed values
//   - count:expr: number of elements of a multi-value field
//   - regex: only through AddRegexRule
//
// Count expressions are "5", "<5", "<=5", ">5", ">=5" or "3-5".
//
// Every rule except required accepts an empty value.
//
// # Multi-value fields
//
// Rules other than count are applied to each element. With IgnoreInvalid,
// failing elements are dropped instead, and the field only fails when nothing
// is left.
//
// # Errors
//
// A field records at most one error: the first rule that failed. Later rules
// for that field are not evaluated. Errors are data; Validate never returns an
// error. Configuration mistakes (unknown rules, regex through AddRules) are
// reported to the zap logger given with WithLogger when debugging is on.
package validation
