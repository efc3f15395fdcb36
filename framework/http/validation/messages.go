package validation

import "fmt"

var messages = map[string]string{
	"required": "The %s field is required.",
	"match":    "The %s field does not match.",
	"distinct": "The %s field must be different.",
	"regex":    "The %s format is invalid.",
	"length":   "The %s field has an invalid length.",
	"chars":    "The %s field contains invalid characters.",
	"numeric":  "The %s must be a valid number.",
	"email":    "The %s must be a valid email address.",
	"phone":    "The %s must be a valid phone number.",
	"cnp":      "The %s must be a valid personal numeric code.",
	"base64":   "The %s must be a valid base64 string.",
	"date":     "The %s is not a valid date.",
	"value":    "The selected %s is invalid.",
	"count":    "The %s field has an invalid number of items.",
}

// Message renders a human-readable message for a failure. Labels added via
// AddError or custom rules get a generic message.
func Message(f RuleFailure) string {
	if tmpl, ok := messages[f.Rule]; ok {
		return fmt.Sprintf(tmpl, f.Field)
	}
	return fmt.Sprintf("The %s field is invalid (%s).", f.Field, f.Rule)
}
