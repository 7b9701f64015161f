package order

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu    sync.RWMutex
	m     map[string]Order
	byRef map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Order{}, byRef: map[string]string{}}
}

func (s *MemStore) Create(_ context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.byRef[o.PaymentReference]; dup {
		return ErrDuplicateReference
	}
	o.Items = slices.Clone(o.Items)
	s.m[o.ID] = o
	s.byRef[o.PaymentReference] = o.ID
	return nil
}

func (s *MemStore) Get(_ context.Context, id string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	o.Items = slices.Clone(o.Items)
	return o, ok, nil
}

func (s *MemStore) Ping(context.Context) error { return nil }
