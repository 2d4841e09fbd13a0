package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dikra-store/internal/auth"
	"dikra-store/internal/catalog"
	"dikra-store/internal/config"
	"dikra-store/internal/db"
	"dikra-store/internal/display"
	"dikra-store/internal/gateway"
	"dikra-store/internal/httpapi"
	"dikra-store/internal/logger"
	"dikra-store/internal/metrics"
	"dikra-store/internal/middleware"
	"dikra-store/internal/order"
	"dikra-store/internal/storefront"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

type app struct {
	handler  http.Handler
	limiter  *middleware.RateLimiter
	registry *storefront.Registry
	orders   order.Service
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.GatewayDriver == config.DriverPostgres {
		database = initDBFunc(cfg)
		defer database.Close()
	}

	a, err := newServer(cfg, database)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.L()
	if a.orders.CheckConnection(ctx) {
		log.Info("persistence gateway reachable", zap.String("driver", cfg.GatewayDriver))
	} else {
		log.Warn("persistence gateway unreachable; checkout will fail until it recovers",
			zap.String("driver", cfg.GatewayDriver))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		addr := ":" + cfg.AppPort
		log.Info("storefront running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		return startServerFunc(gctx, addr, a.handler)
	})
	g.Go(func() error { return a.limiter.Run(gctx) })
	g.Go(func() error { return a.registry.Run(gctx) })

	return g.Wait()
}

func newServer(cfg *config.Config, database *sql.DB) (*app, error) {
	issuer, err := auth.NewSessionIssuer(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session issuer: %w", err)
	}

	gw, err := gateway.New(cfg, database)
	if err != nil {
		return nil, fmt.Errorf("persistence gateway: %w", err)
	}

	var loader display.Loader
	if cfg.AssetBaseURL != "" {
		loader = display.NewHTTPLoader(cfg.AssetBaseURL)
	}

	cat := catalog.Default()
	orderMetrics := &metrics.Orders{}

	registry := storefront.NewRegistry(storefront.NewFactory(storefront.Deps{
		Catalog: cat,
		Loader:  loader,
		Gateway: gw,
		Table:   cfg.OrdersTable,
		Metrics: orderMetrics,
	}), cfg.SessionTTL)

	orders := order.NewService(gw, cfg.OrdersTable)
	api := httpapi.NewHandler(cat, registry, storefront.DefaultDispatcher(), orders, orderMetrics)
	limiter := middleware.NewRateLimiter()

	handler := middleware.Chain(api.Routes(),
		logger.RequestIDMiddleware,
		middleware.CORS(cfg.AllowedOrigin),
		limiter.ByIP,
		middleware.SessionMiddleware(issuer, cfg.IsProduction()),
		limiter.Middleware,
		logger.LoggingMiddleware,
	)

	return &app{
		handler:  handler,
		limiter:  limiter,
		registry: registry,
		orders:   orders,
	}, nil
}

// startServer serves until ctx is cancelled, then drains in-flight requests.
func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.L().Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
