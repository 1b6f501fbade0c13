package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/estate-navigator/internal/api/http"
	"github.com/spec-kit/estate-navigator/internal/api/http/handlers"
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/config"
	"github.com/spec-kit/estate-navigator/internal/events"
	"github.com/spec-kit/estate-navigator/internal/navigation"
	"github.com/spec-kit/estate-navigator/internal/observability"
	"github.com/spec-kit/estate-navigator/internal/persistence"
	"github.com/spec-kit/estate-navigator/internal/service"
	"github.com/spec-kit/estate-navigator/internal/session"
	"github.com/spec-kit/estate-navigator/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	table, err := navigation.LoadRouteTable(cfg.Navigation.RoutesFile)
	if err != nil {
		logger.Fatal("failed to load route table", zap.Error(err))
	}
	resolver, err := navigation.NewResolver(table)
	if err != nil {
		logger.Fatal("invalid route table", zap.Error(err))
	}
	logger.Info("route table loaded",
		zap.Int("pages", len(resolver.Pages())),
		zap.Strings("prefixes", resolver.Prefixes()))

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var publisher service.Publisher
	if redis != nil {
		publisher = redis
	}
	analytics := service.NewAnalyticsService(dispatcher, publisher, logger, cfg.Analytics)
	worker.StartAnalyticsWorker(ctx, analytics)

	metrics := observability.NewMetrics()
	if cfg.Auth.DemoPrefill {
		logger.Warn("demo credential pre-fill enabled")
	}

	registry := session.NewRegistry(session.Options{
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Delays: authflow.Delays{
			Login:         config.Delay(cfg.Auth.LoginDelayMS),
			Register:      config.Delay(cfg.Auth.RegisterDelayMS),
			PasswordReset: config.Delay(cfg.Auth.ResetDelayMS),
			Verify:        config.Delay(cfg.Auth.VerifyDelayMS),
		},
		DemoPrefill: cfg.Auth.DemoPrefill,
		Logger:      logger,
	})
	defer registry.CloseAll()

	shells := service.NewShellService(service.ShellDependencies{
		Sessions: registry,
		Resolver: resolver,
		Logger:   logger,
	})

	app := httptransport.NewApp(cfg.App.Name, cfg.App.RequestTimeout())
	httptransport.RegisterMiddlewares(app, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, resolver, redis),
		Sessions: handlers.NewSessionsHandler(shells),
		Auth:     handlers.NewAuthHandler(shells),
		Session:  handlers.NewSessionMiddleware(shells),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
