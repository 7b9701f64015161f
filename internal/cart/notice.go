package cart

import (
	"context"

	"go.uber.org/zap"
)

type NoticeKind string

const (
	NoticeAdded    NoticeKind = "added"
	NoticeRemoved  NoticeKind = "removed"
	NoticeUpdated  NoticeKind = "updated"
	NoticeCleared  NoticeKind = "cleared"
	NoticeNotFound NoticeKind = "not_found"
)

var noticeMessages = map[NoticeKind]string{
	NoticeAdded:    "Added to cart",
	NoticeRemoved:  "Removed from cart",
	NoticeUpdated:  "Cart updated",
	NoticeCleared:  "Cart cleared",
	NoticeNotFound: "Book not found",
}

// Message is the user-facing text shown for a notice.
func (k NoticeKind) Message() string { return noticeMessages[k] }

// Notice describes the outcome of one cart mutation.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ProductID string     `json:"product_id,omitempty"`
	LineID    string     `json:"line_id,omitempty"`
	Quantity  int        `json:"quantity,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, slot string, n Notice)
}

type NotifierFunc func(ctx context.Context, slot string, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, slot string, n Notice) { f(ctx, slot, n) }

// Notifiers fans a notice out to each notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, slot string, n Notice) {
	for _, x := range ns {
		x.Notify(ctx, slot, n)
	}
}

func LogNotifier(log *zap.Logger) Notifier {
	return NotifierFunc(func(_ context.Context, slot string, n Notice) {
		log.Debug("cart notice",
			zap.String("slot", slot),
			zap.String("kind", string(n.Kind)),
			zap.String("product_id", n.ProductID),
			zap.String("line_id", n.LineID),
			zap.Int("quantity", n.Quantity),
		)
	})
}
