package cart

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Mutations *prometheus.CounterVec
	OpenCarts prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_mutations_total",
				Help: "Cart mutations by notice kind",
			},
			[]string{"kind"},
		),
		OpenCarts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_open_sessions",
			Help: "Carts currently held in memory",
		}),
	}
	reg.MustRegister(m.Mutations, m.OpenCarts)
	return m
}

// Notify counts notices that changed the cart; not-found lookups are skipped.
func (m *Metrics) Notify(_ context.Context, _ string, n Notice) {
	if n.Kind == NoticeNotFound {
		return
	}
	m.Mutations.WithLabelValues(string(n.Kind)).Inc()
}
