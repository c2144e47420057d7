package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopverse/storefront/internal/catalog"
	"github.com/shopverse/storefront/internal/config"
	"github.com/shopverse/storefront/internal/event"
	handler "github.com/shopverse/storefront/internal/handler/http"
	redisrepo "github.com/shopverse/storefront/internal/repository/redis"
	"github.com/shopverse/storefront/internal/service"
	"github.com/shopverse/storefront/pkg/health"
	"github.com/shopverse/storefront/pkg/httpclient"
	pkgkafka "github.com/shopverse/storefront/pkg/kafka"
	"github.com/shopverse/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	catalog         *catalog.Catalog
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// The product catalog is loaded before the server starts; if the source is
// unreachable the service still comes up with an empty catalog and reports
// 503 on catalog reads until a restart.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize tracing.
	traceCfg := tracing.DefaultConfig("storefront")
	traceCfg.Environment = cfg.Environment
	traceCfg.SampleRate = cfg.TraceRatio
	if cfg.OTLPEndpoint != "" {
		traceCfg.OTLPEndpoint = cfg.OTLPEndpoint
		traceCfg.Enabled = true
	}
	tracingShutdown, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Load the product catalog.
	cat := catalog.New()
	loader := catalog.NewLoader(cfg.CatalogSource, httpclient.New(httpclient.DefaultConfig()), logger)
	products, err := loader.Load(ctx)
	if err != nil {
		logger.Error("catalog load failed, serving with empty catalog",
			slog.String("source", cfg.CatalogSource),
			slog.String("error", err.Error()),
		)
	} else {
		cat.Replace(products)
	}

	// Build the dependency graph.
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Hour
	cartRepo := redisrepo.NewCartRepository(rdb, sessionTTL, logger)
	wishlistRepo := redisrepo.NewWishlistRepository(rdb, sessionTTL, logger)
	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(cartRepo, cat, eventProducer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, cat, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if !cat.Loaded() {
			return fmt.Errorf("catalog not loaded")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(cat, cartService, wishlistService, healthHandler, logger, cfg.PprofCIDRs)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		catalog:         cat,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
