package cart

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

type Server struct {
	Carts *Manager
	Log   *zap.Logger
}

type view struct {
	Session string `json:"session"`
	Snapshot
	Notice *Notice `json:"notice,omitempty"`
}

type addReq struct {
	ProductID string `json:"product_id"`
}

// Quantities below 1 are allowed and remove the line.
type updateReq struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.get)
		r.Delete("/", s.clear)
		r.Post("/items", s.add)
		r.Patch("/items/{lineID}", s.update)
		r.Delete("/items/{lineID}", s.remove)
	})

	return r
}

func (s *Server) store(w http.ResponseWriter, r *http.Request) (string, *Store) {
	session := SessionID(w, r)
	return session, s.Carts.Cart(r.Context(), session)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	session, st := s.store(w, r)
	kit.WriteJSON(w, http.StatusOK, view{Session: session, Snapshot: st.Snapshot()})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ProductID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	session, st := s.store(w, r)
	n, err := st.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		s.writeAddError(w, r, req.ProductID, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view{Session: session, Snapshot: st.Snapshot(), Notice: &n})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Quantity == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "quantity required", nil)
		return
	}
	if errs := kit.Validate(req); errs != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid quantity", errs)
		return
	}

	session, st := s.store(w, r)
	n := st.UpdateQuantity(r.Context(), chi.URLParam(r, "lineID"), *req.Quantity)
	kit.WriteJSON(w, http.StatusOK, view{Session: session, Snapshot: st.Snapshot(), Notice: noticeOrNil(n)})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	session, st := s.store(w, r)
	n := st.RemoveFromCart(r.Context(), chi.URLParam(r, "lineID"))
	kit.WriteJSON(w, http.StatusOK, view{Session: session, Snapshot: st.Snapshot(), Notice: noticeOrNil(n)})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	session, st := s.store(w, r)
	n := st.ClearCart(r.Context())
	kit.WriteJSON(w, http.StatusOK, view{Session: session, Snapshot: st.Snapshot(), Notice: &n})
}

func (s *Server) writeAddError(w http.ResponseWriter, r *http.Request, productID string, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, NoticeNotFound.Message(), map[string]any{"product_id": productID})
	case errors.Is(err, ErrCatalogUnavailable):
		if s.Log != nil {
			s.Log.Warn("catalog unavailable", zap.Error(err), zap.String("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", map[string]any{"retryable": true})
	default:
		if s.Log != nil {
			s.Log.Error("catalog error", zap.Error(err), zap.String("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", map[string]any{"retryable": true})
	}
}

// noticeOrNil drops the zero Notice returned when a line id matched nothing.
func noticeOrNil(n Notice) *Notice {
	if n.Kind == "" {
		return nil
	}
	return &n
}
