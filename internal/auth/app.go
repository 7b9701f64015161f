package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FlamingBooks/pkg/kit"
)

type HTTPDeps struct {
	Log *zap.Logger
	kit.MetricsDeps

	// Limiters default to 5 logins and 3 registrations per minute per IP.
	LoginLimiter    *kit.IPRateLimiter
	RegisterLimiter *kit.IPRateLimiter
}

const (
	loginLimitPerMin    = 5
	registerLimitPerMin = 3
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	if deps.LoginLimiter == nil {
		deps.LoginLimiter = kit.NewIPRateLimiter(loginLimitPerMin, 0)
	}
	if deps.RegisterLimiter == nil {
		deps.RegisterLimiter = kit.NewIPRateLimiter(registerLimitPerMin, 0)
	}

	r := chi.NewRouter()
	kit.Base(r, deps.Log)
	kit.MountMetrics(r, deps.MetricsDeps)

	r.Route("/auth", func(rr chi.Router) {
		rr.With(deps.LoginLimiter.Middleware).Post("/login", s.handleLogin)
		rr.With(deps.RegisterLimiter.Middleware).Post("/register", s.handleRegister)
		rr.Get("/whoami", s.handleWhoAmI)
	})

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", s.handleReady)

	return r
}
