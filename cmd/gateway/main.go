package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"FlamingBooks/internal/config"
	"FlamingBooks/internal/forms"
	"FlamingBooks/internal/gateway"
	"FlamingBooks/pkg/kit"
)

const minSecretLen = 32

func main() {
	service := "gateway"
	cfg := config.LoadGateway()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if len(cfg.JWTSecret) < minSecretLen {
		log.Fatal("JWT_SECRET is required and must be at least 32 chars")
	}

	limiter := kit.NewIPRateLimiter(cfg.FormRatePerMin, 0)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go limiter.RunSweeper(sweepCtx)

	deps := gateway.Deps{
		JWTSecret:  cfg.JWTSecret,
		AuthURL:    cfg.AuthURL,
		CatalogURL: cfg.CatalogURL,
		CartURL:    cfg.CartURL,
		Forms: []forms.Endpoint{
			forms.ContactEndpoint(cfg.ContactURL),
			forms.SubscribeEndpoint(cfg.SubscribeURL),
			forms.TestimonialEndpoint(cfg.TestimonialURL),
		},
		FormLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log: log,
		MetricsDeps: kit.MetricsDeps{
			Service:        service,
			Registry:       prometheus.NewRegistry(),
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, func(context.Context) { stopSweep() }); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
