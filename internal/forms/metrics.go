package forms

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Submissions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "form_submissions_total",
				Help: "Form submissions by form and response status",
			},
			[]string{"form", "status"},
		),
	}
	reg.MustRegister(m.Submissions)
	return m
}

func (m *Metrics) observe(form string, status int) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(form, strconv.Itoa(status)).Inc()
}
