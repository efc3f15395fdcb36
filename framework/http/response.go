package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// FieldError is one entry of the 422 error bag.
type FieldError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError sends 422 with the validator's errors and the values
// after reset:
//
//	{
//	  "errors": {"email": {"rule": "email", "message": "The email must be a valid email address."}},
//	  "values": {"email": "", "tags": ["go"]}
//	}
func (res *Response) ValidationError(v *validation.Validator) {
	bag := make(map[string]FieldError)
	for _, f := range v.Failures() {
		bag[f.Field] = FieldError{Rule: f.Rule, Message: validation.Message(f)}
	}
	res.JSON(http.StatusUnprocessableEntity, envelope{
		"errors": bag,
		"values": v.Form().Strings(),
	})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
