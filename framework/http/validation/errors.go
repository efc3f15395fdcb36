package validation

import (
	"errors"
	"fmt"
)

// Configuration diagnostics. They never abort registration; they are
// reported through the validator's debug logger and the offending rule is
// skipped.
var (
	ErrMissingField    = errors.New("validation: missing field")
	ErrMissingRules    = errors.New("validation: missing rules")
	ErrMissingPattern  = errors.New("validation: missing pattern")
	ErrUnknownRule     = errors.New("validation: unknown rule")
	ErrRegexSeparately = errors.New("validation: regex rules must be added with AddRegexRule")
	ErrInvalidPattern  = errors.New("validation: invalid pattern")
	ErrReservedRule    = errors.New("validation: rule name is reserved")
)

// RuleFailure records the rule that invalidated a field. Errors added with
// AddError carry the caller's label in Rule.
type RuleFailure struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (f RuleFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Rule)
}
