package validation

import "slices"

// Value is a submitted form value: a single string or an ordered list of
// strings (checkbox groups, multi-selects, `tags[]` style inputs).
type Value struct {
	items []string
	multi bool
}

// Form maps field names to submitted values.
type Form map[string]Value

// Scalar wraps a single string value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// Sequence wraps a multi-value field. A call with no arguments yields an
// empty sequence, which is distinct from Scalar("").
func Sequence(items ...string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{items: out, multi: true}
}

// IsSequence reports whether v is a multi-value field.
func (v Value) IsSequence() bool { return v.multi }

// String returns the scalar string. For sequences it returns the first
// element, or "" when the sequence is empty.
func (v Value) String() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// Items returns a copy of the elements. A scalar yields a one-element slice.
func (v Value) Items() []string {
	return slices.Clone(v.items)
}

// Len is the element count: sequence length, 1 for a non-empty scalar and
// 0 for an empty one.
func (v Value) Len() int {
	if v.multi {
		return len(v.items)
	}
	if v.String() == "" {
		return 0
	}
	return 1
}

// IsEmpty reports whether the value is "" or an empty sequence.
func (v Value) IsEmpty() bool { return v.Len() == 0 }

// Clone returns a deep copy.
func (v Value) Clone() Value {
	return Value{items: slices.Clone(v.items), multi: v.multi}
}

// Equal compares shape and contents.
func (v Value) Equal(o Value) bool {
	if v.multi != o.multi {
		return false
	}
	if !v.multi {
		return v.String() == o.String()
	}
	return slices.Equal(v.items, o.items)
}

// empty returns the zero value with the same shape as v.
func (v Value) empty() Value {
	if v.multi {
		return Sequence()
	}
	return Scalar("")
}

// mapItems applies fn to every element, keeping the shape.
func (v Value) mapItems(fn func(string) string) Value {
	out := Value{items: make([]string, len(v.items)), multi: v.multi}
	for i, s := range v.items {
		out.items[i] = fn(s)
	}
	if !out.multi && len(out.items) == 0 {
		out.items = []string{""}
	}
	return out
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v.Clone()
	}
	return out
}

// Strings flattens the form into plain Go values (string or []string),
// e.g. for JSON encoding.
func (f Form) Strings() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		if v.multi {
			out[k] = v.Items()
		} else {
			out[k] = v.String()
		}
	}
	return out
}

// FromMap converts a loosely-typed map (decoded JSON, YAML, url.Values)
// into a Form. Slices become sequences, everything else is formatted as a
// scalar string. A nil map yields an empty form.
func FromMap(m map[string]any) Form {
	out := make(Form, len(m))
	for k, raw := range m {
		out[k] = ValueOf(raw)
	}
	return out
}
