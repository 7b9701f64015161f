package cart

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID_MintsWhenMissing(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)

	id := SessionID(w, r)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.Equal(t, id, w.Header().Get(SessionHeader))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionID_FromHeaderOrCookie(t *testing.T) {
	known := uuid.NewString()

	t.Run("header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.Header.Set(SessionHeader, strings.ToUpper(known))

		assert.Equal(t, known, SessionID(w, r))
		assert.Empty(t, w.Result().Cookies(), "known session is not re-issued")
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: known})

		assert.Equal(t, known, SessionID(w, r))
		assert.Equal(t, known, w.Header().Get(SessionHeader))
	})

	t.Run("malformed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.Header.Set(SessionHeader, "../../etc/passwd")

		id := SessionID(w, r)
		assert.NotEqual(t, "../../etc/passwd", id)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}
