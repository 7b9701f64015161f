package cart

import (
	"context"
	"sync"
	"time"
)

type openCart struct {
	store    *Store
	lastUsed time.Time
}

// Manager owns the open Store of every active browser session. Stores are
// opened lazily from their slot and dropped after the idle period; a dropped
// cart is reopened from its slot on the next request.
type Manager struct {
	deps    Deps
	idle    time.Duration
	metrics *Metrics
	now     func() time.Time

	mu   sync.Mutex
	open map[string]*openCart
}

func NewManager(deps Deps, idle time.Duration, metrics *Metrics) *Manager {
	deps = deps.withDefaults()
	if metrics != nil {
		deps.Notifier = Notifiers{deps.Notifier, metrics}
	}
	return &Manager{
		deps:    deps,
		idle:    idle,
		metrics: metrics,
		now:     time.Now,
		open:    map[string]*openCart{},
	}
}

// Cart returns the Store of a session, opening it on first use.
func (m *Manager) Cart(ctx context.Context, session string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oc, ok := m.open[session]; ok {
		oc.lastUsed = m.now()
		return oc.store
	}

	s := Open(ctx, SlotKey(session), m.deps)
	m.open[session] = &openCart{store: s, lastUsed: m.now()}
	m.setGauge()
	return s
}

// Evict drops stores idle for longer than the idle period and reports how
// many were dropped.
func (m *Manager) Evict() int {
	cutoff := m.now().Add(-m.idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, oc := range m.open {
		if oc.lastUsed.Before(cutoff) {
			delete(m.open, id)
			n++
		}
	}
	m.setGauge()
	return n
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}

// Run evicts idle stores periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	t := time.NewTicker(max(m.idle/2, time.Second))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Evict()
		}
	}
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.deps.Slots.Ping(ctx)
}

func (m *Manager) setGauge() {
	if m.metrics != nil {
		m.metrics.OpenCarts.Set(float64(len(m.open)))
	}
}
