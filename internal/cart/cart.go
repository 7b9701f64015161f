// Package cart holds the shopping cart of one browser session.
//
// A Store is the only way to change a cart: AddToCart, RemoveFromCart,
// UpdateQuantity and ClearCart. Each mutation runs to completion under the
// store's lock, then the full line set is written to the store's slot. Slot
// failures are logged and swallowed; the in-memory lines stay authoritative
// for the life of the Store.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
)

const persistTimeout = 2 * time.Second

// MaxLineQuantity caps a single line. Adds past it saturate and larger
// updates are clamped.
const MaxLineQuantity = 999

// Product is the display snapshot taken when a line is created. It is not
// refreshed if the catalog entry later changes.
type Product struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Author string          `json:"author"`
}

type Line struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Snapshot struct {
	Lines []Line          `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Deps struct {
	Slots    SlotStore
	Resolver Resolver
	Notifier Notifier
	Log      *zap.Logger

	// NewID generates line ids. Defaults to uuid.NewString.
	NewID func() string
}

func (d Deps) withDefaults() Deps {
	if d.Slots == nil {
		d.Slots = NewMemSlots()
	}
	if d.Notifier == nil {
		d.Notifier = Notifiers{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

type Store struct {
	mu    sync.Mutex
	key   string
	lines []Line
	deps  Deps
}

// Open hydrates the cart kept in slot key. Any read or decode failure yields
// an empty cart.
func Open(ctx context.Context, key string, deps Deps) *Store {
	s := &Store{key: key, deps: deps.withDefaults()}
	s.lines = s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) []Line {
	raw, ok, err := s.deps.Slots.Load(ctx, s.key)
	if err != nil {
		s.deps.Log.Warn("cart load failed", zap.String("slot", s.key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	lines, err := Decode(raw)
	if err != nil {
		s.deps.Log.Warn("cart decode failed", zap.String("slot", s.key), zap.Error(err))
		return nil
	}
	return lines
}

func (s *Store) Key() string { return s.key }

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.lines)
}

func (s *Store) Total() decimal.Decimal { return s.Snapshot().Total }

func (s *Store) Count() int { return s.Snapshot().Count }

func snapshotOf(lines []Line) Snapshot {
	snap := Snapshot{Lines: slices.Clone(lines), Total: decimal.Zero}
	if snap.Lines == nil {
		snap.Lines = []Line{}
	}
	for _, l := range lines {
		snap.Count += l.Quantity
		snap.Total = snap.Total.Add(l.Subtotal())
	}
	return snap
}

// AddToCart increments the line already holding productID, or resolves the
// product and appends a new line with quantity 1. Resolution errors leave the
// cart untouched and are returned as is.
func (s *Store) AddToCart(ctx context.Context, productID string) (Notice, error) {
	productID = strings.TrimSpace(productID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOfProduct(productID); i >= 0 {
		if s.lines[i].Quantity < MaxLineQuantity {
			s.lines[i].Quantity++
		}
		s.persist(ctx)
		return s.emit(ctx, Notice{Kind: NoticeAdded, ProductID: productID, LineID: s.lines[i].ID, Quantity: s.lines[i].Quantity}), nil
	}

	if productID == "" {
		s.emit(ctx, Notice{Kind: NoticeNotFound})
		return Notice{}, ErrProductNotFound
	}

	p, err := s.deps.Resolver.Resolve(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			s.emit(ctx, Notice{Kind: NoticeNotFound, ProductID: productID})
		}
		return Notice{}, err
	}
	p.ID = productID

	line := Line{ID: s.deps.NewID(), Quantity: 1, Product: p}
	s.lines = append(s.lines, line)
	s.persist(ctx)
	return s.emit(ctx, Notice{Kind: NoticeAdded, ProductID: productID, LineID: line.ID, Quantity: 1}), nil
}

// RemoveFromCart deletes the line if present. Removing an unknown line
// changes nothing and returns a zero Notice.
func (s *Store) RemoveFromCart(ctx context.Context, lineID string) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, lineID)
}

func (s *Store) removeLocked(ctx context.Context, lineID string) Notice {
	i := s.indexOfLine(lineID)
	if i < 0 {
		return Notice{}
	}
	n := Notice{Kind: NoticeRemoved, LineID: lineID, ProductID: s.lines[i].Product.ID}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.persist(ctx)
	return s.emit(ctx, n)
}

// UpdateQuantity sets a line's quantity. Anything below 1 removes the line;
// anything above MaxLineQuantity is clamped. Unknown lines yield a zero
// Notice and nothing is written.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.removeLocked(ctx, lineID)
	}

	quantity = min(quantity, MaxLineQuantity)

	i := s.indexOfLine(lineID)
	if i < 0 {
		return Notice{}
	}
	s.lines[i].Quantity = quantity
	s.persist(ctx)
	return s.emit(ctx, Notice{Kind: NoticeUpdated, LineID: lineID, ProductID: s.lines[i].Product.ID, Quantity: quantity})
}

// ClearCart empties the cart and deletes its slot.
func (s *Store) ClearCart(ctx context.Context) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Checkout hands the current lines to commit and clears the cart only if
// commit succeeds. No mutation can interleave between the two. An empty cart
// returns ErrEmptyCart without calling commit.
func (s *Store) Checkout(ctx context.Context, commit func(ctx context.Context, snap Snapshot) error) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return Notice{}, ErrEmptyCart
	}
	if err := commit(ctx, snapshotOf(s.lines)); err != nil {
		return Notice{}, err
	}
	return s.clearLocked(ctx), nil
}

func (s *Store) clearLocked(ctx context.Context) Notice {
	s.lines = nil
	err := kit.WithTimeout(ctx, persistTimeout, func(ctx context.Context) error {
		return s.deps.Slots.Delete(ctx, s.key)
	})
	if err != nil {
		s.deps.Log.Warn("cart clear failed", zap.String("slot", s.key), zap.Error(err))
	}
	return s.emit(ctx, Notice{Kind: NoticeCleared})
}

func (s *Store) persist(ctx context.Context) {
	raw, err := Encode(s.lines)
	if err == nil {
		err = kit.WithTimeout(ctx, persistTimeout, func(ctx context.Context) error {
			return s.deps.Slots.Save(ctx, s.key, raw)
		})
	}
	if err != nil {
		s.deps.Log.Warn("cart persist failed", zap.String("slot", s.key), zap.Error(err))
	}
}

func (s *Store) emit(ctx context.Context, n Notice) Notice {
	n.Message = n.Kind.Message()
	s.deps.Notifier.Notify(ctx, s.key, n)
	return n
}

func (s *Store) indexOfProduct(productID string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.Product.ID == productID })
}

func (s *Store) indexOfLine(lineID string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == lineID })
}

// Encode serializes lines in the slot format: a JSON array of lines.
func Encode(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses the slot format. Lines without ids or with a quantity below 1
// are dropped, lines sharing a product id are merged, and quantities are
// capped at MaxLineQuantity.
func Decode(raw []byte) ([]Line, error) {
	var in []Line
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	out := make([]Line, 0, len(in))
	byProduct := make(map[string]int, len(in))
	for _, l := range in {
		if l.ID == "" || l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		l.Quantity = min(l.Quantity, MaxLineQuantity)
		if i, ok := byProduct[l.Product.ID]; ok {
			out[i].Quantity = min(out[i].Quantity+l.Quantity, MaxLineQuantity)
			continue
		}
		byProduct[l.Product.ID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
