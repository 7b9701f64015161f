package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"FlamingBooks/internal/cart"
	"FlamingBooks/internal/config"
	"FlamingBooks/internal/order"
	"FlamingBooks/pkg/kit"
)

var errNoDatabase = errors.New("CART_STORE=postgres requires DATABASE_URL")

func main() {
	service := "cart"
	cfg := config.LoadCart()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = kit.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open postgres failed", zap.Error(err))
		}
	}

	slots, closeSlots, err := openSlots(ctx, cfg, db)
	if err != nil {
		log.Fatal("open cart slots failed", zap.Error(err), zap.String("store", cfg.Store))
	}

	var orders order.Store = order.NewMemStore()
	if db != nil {
		pg := order.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("migrate orders failed", zap.Error(err))
		}
		orders = pg
	} else {
		log.Warn("DATABASE_URL not set, orders are kept in memory")
	}

	reg := prometheus.NewRegistry()
	catalogClient := cart.NewCatalogClient(cfg.CatalogURL)

	carts := cart.NewManager(cart.Deps{
		Slots:    slots,
		Resolver: catalogClient,
		Notifier: cart.LogNotifier(log),
		Log:      log,
	}, cfg.SessionIdle, cart.NewMetrics(reg))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go carts.Run(runCtx)

	orderServer := &order.Server{Store: orders, Carts: carts, Log: log}

	h := cart.NewHandler(&cart.Server{Carts: carts, Log: log}, cart.HTTPDeps{
		Log: log,
		MetricsDeps: kit.MetricsDeps{
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
		Upstreams: map[string]cart.Pinger{
			"catalog": catalogClient,
			"orders":  orders,
		},
		Extra: []func(chi.Router){orderServer.Register},
	})

	err = kit.RunHTTPServer(":"+cfg.Port, h, log, func(context.Context) {
		stop()
		closeSlots()
		if db != nil {
			_ = db.Close()
		}
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openSlots(ctx context.Context, cfg config.Cart, db *sql.DB) (cart.SlotStore, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreSQLite:
		s, err := cart.OpenSQLiteSlots(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StorePostgres:
		if db == nil {
			return nil, nil, errNoDatabase
		}
		s := cart.NewPostgresSlots(db)
		if err := s.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	default:
		return cart.NewMemSlots(), noop, nil
	}
}
