package http

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

const maxMemory = 32 << 20 // 32 MB

// ErrEmptyBody is returned when a JSON request has no body.
var ErrEmptyBody = errors.New("empty request body")

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Form extraction ──────────────────────────────────────────────────────────

// Form returns the submitted fields ready for validation.
//
// JSON bodies must be an object; arrays become sequences. Form-encoded and
// multipart bodies are merged with the query string; a key ending in "[]"
// or sent more than once becomes a sequence named without the suffix.
func (req *Request) Form() (validation.Form, error) {
	ct := req.ContentType()

	switch {
	case strings.Contains(ct, "application/json"):
		var m map[string]any
		if err := req.Bind(&m); err != nil {
			return nil, err
		}
		return validation.FromMap(m), nil
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
	default:
		if err := req.raw.ParseForm(); err != nil {
			return nil, err
		}
	}
	return FormFromValues(req.raw.Form), nil
}

// FormFromValues converts url.Values-like data into a validation form.
// Keys are visited in sorted order, so "tags" comes before "tags[]" when
// both are sent.
func FormFromValues(values map[string][]string) validation.Form {
	out := make(validation.Form, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		vals := values[key]
		name, isList := strings.CutSuffix(key, "[]")
		if prev, ok := out[name]; ok {
			vals = append(prev.Items(), vals...)
			isList = true
		}
		switch {
		case isList || len(vals) > 1:
			out[name] = validation.Sequence(vals...)
		case len(vals) == 1:
			out[name] = validation.Scalar(vals[0])
		default:
			out[name] = validation.Scalar("")
		}
	}
	return out
}

// Bind decodes a JSON body into v.
func (req *Request) Bind(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
