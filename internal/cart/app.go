package cart

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPDeps struct {
	Log *zap.Logger
	kit.MetricsDeps

	// Upstreams are checked by /readyz in addition to the slot store.
	Upstreams map[string]Pinger

	// Extra registers routes served next to the cart API (checkout, orders).
	Extra []func(chi.Router)
}

const readyTimeout = 1 * time.Second

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	kit.Base(r, deps.Log)
	kit.MountMetrics(r, deps.MetricsDeps)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", readyz(s, deps))

	for _, register := range deps.Extra {
		register(r)
	}

	r.Mount("/", s.Routes())
	return r
}

func readyz(s *Server, deps HTTPDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.Carts.Ping(ctx); err != nil {
			if deps.Log != nil {
				deps.Log.Warn("readyz failed: slots", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}

		for name, p := range deps.Upstreams {
			if err := p.Ping(ctx); err != nil {
				if deps.Log != nil {
					deps.Log.Warn("readyz failed: "+name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}
