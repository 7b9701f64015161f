package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const StatusCompleted = "completed"

var ErrDuplicateReference = errors.New("payment reference already used")

// Item is a cart line frozen at checkout time.
type Item struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
}

type Order struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	PaymentReference string          `json:"payment_reference"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone,omitempty"`
	ShippingAddress  string          `json:"shipping_address"`
	Items            []Item          `json:"items"`
	Total            decimal.Decimal `json:"total"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Store persists completed orders. Create must reject a payment reference it
// has already recorded with ErrDuplicateReference.
type Store interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, bool, error)
	Ping(ctx context.Context) error
}
