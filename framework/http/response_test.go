package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-formvalidation/framework/http"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "val", decodeJSON(t, rr)["key"])
}

func TestResponse_Success(t *testing.T) {
	res, rr := newResponse(t)
	res.Success(map[string]any{"id": 1})

	assert.Equal(t, http.StatusOK, rr.Code)
	data, ok := decodeJSON(t, rr)["data"].(map[string]any)
	require.True(t, ok, "expected data envelope")
	assert.Equal(t, float64(1), data["id"])
}

func TestResponse_Errors(t *testing.T) {
	res, rr := newResponse(t)
	res.NotFound()
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not found.", decodeJSON(t, rr)["message"])

	res, rr = newResponse(t)
	res.NotFound("no such form")
	assert.Equal(t, "no such form", decodeJSON(t, rr)["message"])

	res, rr = newResponse(t)
	res.Error(http.StatusBadRequest, "boom")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "boom", decodeJSON(t, rr)["message"])
}

// ── ValidationError ──────────────────────────────────────────────────────────

func TestResponse_ValidationError(t *testing.T) {
	v := validation.New(validation.Form{
		"email": validation.Scalar("nope"),
		"name":  validation.Scalar("Alice"),
	})
	v.AddRules("email", "required|email")
	v.AddRules("name", "required")
	v.Validate(true, validation.Form{"email": validation.Scalar("you@example.com")})

	res, rr := newResponse(t)
	res.ValidationError(v)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	m := decodeJSON(t, rr)

	errs, ok := m["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "email")
	assert.NotContains(t, errs, "name")

	email := errs["email"].(map[string]any)
	assert.Equal(t, "email", email["rule"])
	assert.NotEmpty(t, email["message"])

	values := m["values"].(map[string]any)
	assert.Equal(t, "you@example.com", values["email"], "failing field reset to default")
	assert.Equal(t, "Alice", values["name"])
}
