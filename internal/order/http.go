package order

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FlamingBooks/internal/cart"
	"FlamingBooks/pkg/kit"
)

type Server struct {
	Store Store
	Carts *cart.Manager
	Log   *zap.Logger

	// Now stamps CreatedAt. Defaults to time.Now.
	Now func() time.Time
}

type checkoutReq struct {
	PaymentReference string `json:"payment_reference" validate:"required,max=128"`
	Name             string `json:"name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Phone            string `json:"phone" validate:"omitempty,max=40"`
	ShippingAddress  string `json:"shipping_address" validate:"required,max=1000"`
}

func (r *checkoutReq) normalize() {
	r.PaymentReference = strings.TrimSpace(r.PaymentReference)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
}

type checkoutResp struct {
	Order  Order       `json:"order"`
	Notice cart.Notice `json:"notice"`
}

// Register mounts checkout and order lookup on r. Both require the gateway's
// identity headers.
func (s *Server) Register(r chi.Router) {
	r.Group(func(pr chi.Router) {
		pr.Use(RequireUserHeaders)
		pr.Post("/checkout", s.checkout)
		pr.Get("/orders/{id}", s.get)
	})
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	var req checkoutReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	req.normalize()
	if errs := kit.Validate(req); errs != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid checkout", errs)
		return
	}

	st := s.Carts.Cart(r.Context(), cart.SessionID(w, r))

	var created Order
	notice, err := st.Checkout(r.Context(), func(ctx context.Context, snap cart.Snapshot) error {
		created = s.newOrder(u, req, snap)
		return s.Store.Create(ctx, created)
	})
	if err != nil {
		s.writeCheckoutError(w, r, err)
		return
	}

	if s.Log != nil {
		s.Log.Info("order completed",
			zap.String("order_id", created.ID),
			zap.String("user_id", created.UserID),
			zap.String("total", created.Total.String()),
		)
	}
	kit.WriteJSON(w, http.StatusCreated, checkoutResp{Order: created, Notice: notice})
}

func (s *Server) newOrder(u User, req checkoutReq, snap cart.Snapshot) Order {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	items := make([]Item, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, Item{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Price:     l.Product.Price,
			Qty:       l.Quantity,
		})
	}

	return Order{
		ID:               "o_" + uuid.NewString(),
		UserID:           u.ID,
		PaymentReference: req.PaymentReference,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		ShippingAddress:  req.ShippingAddress,
		Items:            items,
		Total:            snap.Total,
		Status:           StatusCompleted,
		CreatedAt:        now().UTC(),
	}
}

func (s *Server) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
	case errors.Is(err, ErrDuplicateReference):
		kit.WriteError(w, r, http.StatusConflict, "payment reference already used", nil)
	case isTimeoutErr(err):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	default:
		if s.Log != nil {
			s.Log.Error("store create order failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	o, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("store get order failed", zap.Error(err), zap.String("order_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if o.UserID != u.ID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
