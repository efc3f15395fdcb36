package forms

import (
	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// Field declares the rules of one form field.
type Field struct {
	Name          string `yaml:"name" toml:"name" json:"name"`
	Rules         string `yaml:"rules" toml:"rules" json:"rules,omitempty"`
	Regex         string `yaml:"regex" toml:"regex" json:"regex,omitempty"`
	Default       any    `yaml:"default" toml:"default" json:"default,omitempty"`
	IgnoreInvalid bool   `yaml:"ignore_invalid" toml:"ignore_invalid" json:"ignore_invalid,omitempty"`
	IgnoreErrors  bool   `yaml:"ignore_errors" toml:"ignore_errors" json:"ignore_errors,omitempty"`
}

// Definition is a declarative form: its fields in rule application order
// plus validator settings.
//
//	name: signup
//	fields:
//	  - name: email
//	    rules: required|email
//	  - name: tags
//	    rules: count:1-5|chars:alpha:dash
//	    ignore_invalid: true
//	    default: [general]
type Definition struct {
	Name    string  `yaml:"name" toml:"name" json:"name"`
	Charset string  `yaml:"charset" toml:"charset" json:"charset,omitempty"`
	Trim    *bool   `yaml:"trim" toml:"trim" json:"trim,omitempty"`
	Reset   *bool   `yaml:"reset" toml:"reset" json:"reset,omitempty"`
	Fields  []Field `yaml:"fields" toml:"fields" json:"fields"`

	source string
}

// Source is the file the definition was loaded from.
func (d *Definition) Source() string { return d.source }

// ResetInvalid reports whether invalid fields are reset to defaults
// (default true).
func (d *Definition) ResetInvalid() bool { return d.Reset == nil || *d.Reset }

// Defaults collects the declared field defaults.
func (d *Definition) Defaults() validation.Form {
	out := validation.Form{}
	for _, f := range d.Fields {
		if f.Default != nil {
			out[f.Name] = validation.ValueOf(f.Default)
		}
	}
	return out
}

// Validator builds a validator for form with every field's rules
// registered. Bulk rules are registered before the field's regex. Settings
// from the definition take precedence over opts.
func (d *Definition) Validator(form validation.Form, opts ...validation.Option) *validation.Validator {
	if d.Charset != "" {
		opts = append(opts, validation.WithCharset(d.Charset))
	}
	if d.Trim != nil {
		opts = append(opts, validation.WithTrim(*d.Trim))
	}
	v := validation.New(form, opts...)

	for _, f := range d.Fields {
		if f.Rules != "" {
			v.AddRules(f.Name, f.Rules)
		}
		if f.Regex != "" {
			v.AddRegexRule(f.Name, f.Regex)
		}
		if f.IgnoreInvalid {
			v.IgnoreInvalid(f.Name)
		}
		if f.IgnoreErrors {
			v.IgnoreErrors(f.Name)
		}
	}
	return v
}

// Run builds the validator and validates form with the declared defaults.
func (d *Definition) Run(form validation.Form, opts ...validation.Option) *validation.Validator {
	v := d.Validator(form, opts...)
	v.Validate(d.ResetInvalid(), d.Defaults())
	return v
}
