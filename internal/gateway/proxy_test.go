package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FlamingBooks/internal/auth"
)

func TestReverseProxy_ReplacesIdentityHeaders(t *testing.T) {
	var gotID, gotRole string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotRole = r.Header.Get(headerUserID), r.Header.Get(headerUserRole)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(upstream.Close)

	p, err := NewReverseProxy(upstream.URL, nil)
	require.NoError(t, err)

	tm := auth.NewTokenMaker("s")
	tok, err := tm.New(auth.User{ID: "u_real", Role: auth.RoleCustomer}, time.Minute)
	require.NoError(t, err)

	t.Run("anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/cart", nil)
		r.Header.Set(headerUserID, "u_spoofed")
		r.Header.Set(headerUserRole, "admin")
		w := httptest.NewRecorder()
		p.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, gotID)
		assert.Empty(t, gotRole)
	})

	t.Run("authenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/orders/o_1", nil)
		r.Header.Set("Authorization", "Bearer "+tok)
		r.Header.Set(headerUserID, "u_spoofed")
		w := httptest.NewRecorder()
		AuthJWT(tm)(p).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "u_real", gotID)
		assert.Equal(t, auth.RoleCustomer, gotRole)
	})
}

func TestReverseProxy_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	target := dead.URL
	dead.Close()

	p, err := NewReverseProxy(target, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNewReverseProxy_RejectsRelativeTarget(t *testing.T) {
	_, err := NewReverseProxy("catalog:8082", nil)
	assert.Error(t, err)
}
