package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres/pokemon"
	"github.com/heartmarshall/pokescout-backend/internal/adapter/provider/pokeapi"
	"github.com/heartmarshall/pokescout-backend/internal/config"
	"github.com/heartmarshall/pokescout-backend/internal/service/catalog"
	"github.com/heartmarshall/pokescout-backend/internal/transport/middleware"
	"github.com/heartmarshall/pokescout-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, applies migrations when enabled and serves HTTP until ctx is
// cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("pokeapi_base_url", cfg.PokeAPI.BaseURL),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		version, err := postgres.Migrate(ctx, pool, logger)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("database schema ready", slog.Int64("version", version))
	}

	handler, cleanup := NewHandler(cfg, logger, pool)
	defer cleanup()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

// NewCatalogService wires the catalog service to PostgreSQL and PokeAPI.
func NewCatalogService(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *catalog.Service {
	return catalog.NewService(
		logger,
		pokemon.New(pool),
		postgres.NewTxManager(pool),
		pokeapi.NewProvider(cfg.PokeAPI, logger),
		cfg.Catalog,
	)
}

// NewHandler builds the HTTP handler with all routes and middleware.
// The returned func releases background resources and must be called on shutdown.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (http.Handler, func()) {
	svc := NewCatalogService(cfg, logger, pool)
	limiter := middleware.NewRateLimiter(time.Minute)

	router := rest.NewRouter(
		rest.NewPokemonHandler(svc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
		Version,
		limiter.Limit(cfg.RateLimit.FetchPerMinute),
		limiter.LimitCost(cfg.RateLimit.FetchPerMinute, rest.BatchCost),
	)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	return handler, limiter.Stop
}
