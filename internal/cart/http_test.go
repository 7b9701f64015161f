package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

type cartView struct {
	Session string  `json:"session"`
	Lines   []Line  `json:"lines"`
	Count   int     `json:"count"`
	Total   string  `json:"total"`
	Notice  *Notice `json:"notice"`
}

type apiClient struct {
	t       *testing.T
	h       http.Handler
	session string
}

func (c *apiClient) do(method, path string, body any) (*httptest.ResponseRecorder, cartView) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		r.Header.Set(SessionHeader, c.session)
	}

	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, r)
	if s := w.Header().Get(SessionHeader); s != "" {
		c.session = s
	}

	var v cartView
	if w.Code == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &v))
	}
	return w, v
}

func newTestHandler(resolver Resolver, deps HTTPDeps) http.Handler {
	m := NewManager(Deps{Resolver: resolver, NewID: seqIDs()}, 0, nil)
	return NewHandler(&Server{Carts: m, Log: zap.NewNop()}, deps)
}

func TestHTTP_CartFlow(t *testing.T) {
	c := &apiClient{t: t, h: newTestHandler(fakeCatalog, HTTPDeps{})}

	w, v := c.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, c.session)
	assert.Empty(t, v.Lines)
	assert.Equal(t, "0", v.Total)

	for _, id := range []string{"p1", "p2", "p1"} {
		w, _ = c.do(http.MethodPost, "/cart/items", map[string]string{"product_id": id})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	_, v = c.do(http.MethodGet, "/cart", nil)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "13000", v.Total)
	assert.Equal(t, 3, v.Count)

	lineID := v.Lines[1].ID
	w, v = c.do(http.MethodPatch, "/cart/items/"+lineID, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "19000", v.Total)
	require.NotNil(t, v.Notice)
	assert.Equal(t, "Cart updated", v.Notice.Message)

	w, v = c.do(http.MethodDelete, "/cart/items/"+lineID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, v.Lines, 1)
	assert.Equal(t, "Removed from cart", v.Notice.Message)

	w, v = c.do(http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, v.Lines)
	assert.Equal(t, NoticeCleared, v.Notice.Kind)
}

func TestHTTP_UpdateQuantityBounds(t *testing.T) {
	c := &apiClient{t: t, h: newTestHandler(fakeCatalog, HTTPDeps{})}

	w, _ := c.do(http.MethodPost, "/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	_, v := c.do(http.MethodGet, "/cart", nil)
	require.Len(t, v.Lines, 1)
	lineID := v.Lines[0].ID

	w, _ = c.do(http.MethodPatch, "/cart/items/"+lineID, map[string]int{"quantity": MaxLineQuantity + 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var e kit.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "invalid quantity", e.Error)

	w, v = c.do(http.MethodPatch, "/cart/items/"+lineID, map[string]int{"quantity": MaxLineQuantity})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MaxLineQuantity, v.Count)

	w, v = c.do(http.MethodPost, "/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MaxLineQuantity, v.Count)

	w, v = c.do(http.MethodDelete, "/cart/items/no-such-line", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, v.Notice)
	assert.Equal(t, MaxLineQuantity, v.Count)
}

func TestHTTP_AddErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad json", body: `{"product_id":`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"sku":"p1"}`, status: http.StatusBadRequest},
		{name: "missing id", body: `{}`, status: http.StatusBadRequest},
		{name: "not found", body: `{"product_id":"zzz"}`, err: ErrProductNotFound, status: http.StatusNotFound},
		{name: "unavailable", body: `{"product_id":"p1"}`, err: fmt.Errorf("%w: refused", ErrCatalogUnavailable), status: http.StatusServiceUnavailable},
		{name: "bad upstream", body: `{"product_id":"p1"}`, err: ErrCatalogBadStatus, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(ResolverFunc(func(context.Context, string) (Product, error) {
				if tt.err != nil {
					return Product{}, tt.err
				}
				return products["p1"], nil
			}), HTTPDeps{})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(tt.body))
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var e kit.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
			if errors.Is(tt.err, ErrProductNotFound) {
				assert.Equal(t, "Book not found", e.Error)
			}
		})
	}
}

func TestHTTP_UpdateRequiresQuantity(t *testing.T) {
	c := &apiClient{t: t, h: newTestHandler(fakeCatalog, HTTPDeps{})}

	w, _ := c.do(http.MethodPatch, "/cart/items/whatever", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHTTP_ReadyzAndExtra(t *testing.T) {
	var catalogDown bool
	h := newTestHandler(fakeCatalog, HTTPDeps{
		Upstreams: map[string]Pinger{
			"catalog": pingFunc(func(context.Context) error {
				if catalogDown {
					return errors.New("down")
				}
				return nil
			}),
		},
		Extra: []func(chi.Router){
			func(r chi.Router) {
				r.Get("/checkout/ping", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				})
			},
		},
	})

	get := func(path string) int {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("/healthz"))
	assert.Equal(t, http.StatusOK, get("/readyz"))
	assert.Equal(t, http.StatusNoContent, get("/checkout/ping"))

	catalogDown = true
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))
}
