package main

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"FlamingBooks/internal/auth"
	"FlamingBooks/internal/config"
	"FlamingBooks/pkg/kit"
)

func main() {
	service := "auth"
	cfg := config.LoadAuth()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var (
		store auth.UserStore = auth.NewStore()
		db    *sql.DB
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = kit.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open postgres failed", zap.Error(err))
		}
		pg := auth.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("migrate users failed", zap.Error(err))
		}
		store = pg
	} else {
		log.Warn("DATABASE_URL not set, accounts are kept in memory")
	}

	loginLimiter := kit.NewIPRateLimiter(5, 0)
	registerLimiter := kit.NewIPRateLimiter(3, 0)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go loginLimiter.RunSweeper(sweepCtx)
	go registerLimiter.RunSweeper(sweepCtx)

	s := &auth.Server{
		Log:   log,
		Store: store,
		JWT:   auth.NewTokenMaker(cfg.JWTSecret),
	}

	h := auth.NewHandler(s, auth.HTTPDeps{
		Log: log,
		MetricsDeps: kit.MetricsDeps{
			Service:        service,
			Registry:       prometheus.NewRegistry(),
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
		LoginLimiter:    loginLimiter,
		RegisterLimiter: registerLimiter,
	})

	err := kit.RunHTTPServer(":"+cfg.Port, h, log, func(context.Context) {
		stopSweep()
		if db != nil {
			_ = db.Close()
		}
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
