package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"FlamingBooks/internal/catalog"
	"FlamingBooks/internal/config"
	"FlamingBooks/pkg/kit"
)

func main() {
	service := "catalog"
	cfg := config.LoadCatalog()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	c, err := catalog.LoadDir(cfg.ContentDir, catalog.Options{Log: log})
	if err != nil {
		log.Fatal("load content failed", zap.Error(err), zap.String("dir", cfg.ContentDir))
	}

	h := catalog.NewHandler(&catalog.Server{Catalog: c, Log: log}, catalog.HTTPDeps{
		Log: log,
		MetricsDeps: kit.MetricsDeps{
			Service:        service,
			Registry:       prometheus.NewRegistry(),
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
