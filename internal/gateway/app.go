package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"FlamingBooks/internal/auth"
	"FlamingBooks/internal/cart"
	"FlamingBooks/internal/forms"
	"FlamingBooks/pkg/kit"
)

type HTTPDeps struct {
	Log *zap.Logger
	kit.MetricsDeps
}

type Deps struct {
	AuthURL    string
	CatalogURL string
	CartURL    string
	JWTSecret  string

	Forms          []forms.Endpoint
	FormRatePerMin int
	// FormLimiter overrides the limiter built from FormRatePerMin so the
	// caller can run its sweeper.
	FormLimiter *kit.IPRateLimiter

	CORSOrigins []string
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
	corsMaxAge        = 300
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

var catalogRoutes = []string{
	"/products", "/products/*",
	"/categories",
	"/authors",
	"/events",
	"/collections",
	"/gallery/*",
	"/testimonials",
	"/blog", "/blog/*",
	"/about",
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	authProxy, catalogProxy, cartProxy, err := buildProxies(deps, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	jwt := auth.NewTokenMaker(deps.JWTSecret)

	r := chi.NewRouter()
	kit.Base(r, httpDeps.Log)
	r.Use(corsHandler(deps.CORSOrigins))
	kit.MountMetrics(r, httpDeps.MetricsDeps)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Handle("/auth", authProxy)
	r.Handle("/auth/*", authProxy)

	for _, p := range catalogRoutes {
		r.Handle(p, catalogProxy)
	}

	r.Handle("/cart", cartProxy)
	r.Handle("/cart/*", cartProxy)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(jwt))
		pr.Handle("/checkout", cartProxy)
		pr.Handle("/orders/*", cartProxy)
	})

	fs := &forms.Server{
		Endpoints: deps.Forms,
		Limiter:   deps.FormLimiter,
		Log:       httpDeps.Log,
	}
	if fs.Limiter == nil && deps.FormRatePerMin > 0 {
		fs.Limiter = kit.NewIPRateLimiter(deps.FormRatePerMin, 0)
	}
	if httpDeps.Registry != nil {
		fs.Metrics = forms.NewMetrics(httpDeps.Registry)
	}
	fs.Register(r)

	return r, nil
}

func buildProxies(deps Deps, log *zap.Logger) (authProxy, catalogProxy, cartProxy http.Handler, err error) {
	ap, err := NewReverseProxy(deps.AuthURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	cp, err := NewReverseProxy(deps.CatalogURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	kp, err := NewReverseProxy(deps.CartURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return ap, cp, kp, nil
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", cart.SessionHeader},
		ExposedHeaders:   []string{cart.SessionHeader, "X-Request-Id"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           corsMaxAge,
	})
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	backends := []struct{ name, url string }{
		{"auth", deps.AuthURL},
		{"catalog", deps.CatalogURL},
		{"cart", deps.CartURL},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, b := range backends {
			if err := checkReady(ctx, b.url+"/readyz"); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+b.name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, b.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
