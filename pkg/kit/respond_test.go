package kit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "ok", in: `{"name":"a"}`},
		{name: "unknown field", in: `{"name":"a","x":1}`, wantErr: true},
		{name: "trailing data", in: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "truncated", in: `{"name":`, wantErr: true},
		{name: "too large", in: `{"name":"` + strings.Repeat("a", MaxJSONBody) + `"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.in))
			err := DecodeJSON(w, r, &b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a", b.Name)
		})
	}
}

func TestWriteError_CarriesRequestID(t *testing.T) {
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusTeapot, "nope", map[string]any{"k": "v"})
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var e ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "nope", e.Error)
	assert.NotEmpty(t, e.RequestID)
}

func TestValidate(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `form:"full_name" validate:"max=3"`
	}

	assert.Nil(t, Validate(form{Email: "a@b.co", Name: "abc"}))

	errs := Validate(form{Email: "nope", Name: "abcd"})
	require.Len(t, errs, 2)
	assert.Equal(t, FieldError{Field: "email", Tag: "email", Message: "invalid email format"}, errs[0])
	assert.Equal(t, "full_name", errs[1].Field)
	assert.Equal(t, "max", errs[1].Tag)
}
