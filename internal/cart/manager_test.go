package cart

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestManager_ReusesAndEvicts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	slots := NewMemSlots()

	m := NewManager(Deps{Slots: slots, Resolver: fakeCatalog}, 10*time.Minute, metrics)
	m.now = func() time.Time { return now }

	a := m.Cart(ctx, "a")
	assert.Same(t, a, m.Cart(ctx, "a"))
	_, err := a.AddToCart(ctx, "p1")
	require.NoError(t, err)

	now = now.Add(8 * time.Minute)
	m.Cart(ctx, "b")
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.OpenCarts))

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, m.Evict())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenCarts))

	reopened := m.Cart(ctx, "a")
	assert.NotSame(t, a, reopened)
	assert.Equal(t, 1, reopened.Count(), "evicted cart reloads from its slot")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Mutations.WithLabelValues(string(NoticeAdded))))
}

func TestMetrics_SkipNotFound(t *testing.T) {
	ctx := context.Background()
	metrics := NewMetrics(prometheus.NewRegistry())
	m := NewManager(Deps{Resolver: fakeCatalog}, time.Hour, metrics)

	s := m.Cart(ctx, "a")
	_, err := s.AddToCart(ctx, "unknown-id")
	require.ErrorIs(t, err, ErrProductNotFound)
	_, err = s.AddToCart(ctx, "p2")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Mutations), "only the add is counted")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Mutations.WithLabelValues(string(NoticeAdded))))
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(Deps{Resolver: fakeCatalog}, time.Hour, nil)

	_, err := m.Cart(ctx, "a").AddToCart(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Cart(ctx, "a").Count())
	assert.Zero(t, m.Cart(ctx, "b").Count())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := NewManager(Deps{}, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
