package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres"
	"github.com/heartmarshall/pokescout-backend/internal/app"
	"github.com/heartmarshall/pokescout-backend/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pokesync",
		Short:         "Populate the PokeScout catalog from PokeAPI",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSyncCmd(), newMigrateCmd())
	return root
}

// env is what every subcommand needs: config, logger and an open pool.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &env{cfg: cfg, logger: logger, pool: pool}, nil
}

func (e *env) close() {
	e.pool.Close()
}
