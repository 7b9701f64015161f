package cart

import (
	"context"
	"sync"
)

// SlotKeyPrefix namespaces cart slots; the suffix is the browser session id.
const SlotKeyPrefix = "fb_cart:"

func SlotKey(session string) string { return SlotKeyPrefix + session }

// SlotStore is named-slot storage holding one serialized cart per key.
type SlotStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type MemSlots struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemSlots() *MemSlots {
	return &MemSlots{m: map[string][]byte{}}
}

func (s *MemSlots) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemSlots) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemSlots) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemSlots) Ping(context.Context) error { return nil }
