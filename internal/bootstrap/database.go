package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/store"

	"github.com/jonboulle/clockwork"
)

const dbInitTimeout = 30 * time.Second

// initializeDatabase opens and migrates the database, then applies SEED_FILE
// when one is configured.
func initializeDatabase(
	ctx context.Context,
	cfg *config.Config,
	clock clockwork.Clock,
	logger *slog.Logger,
) (*store.Store, error) {
	// Create timeout context for this specific operation
	ctx, cancel := context.WithTimeout(ctx, dbInitTimeout)
	defer cancel()

	db, err := store.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("Database initialized", "driver", cfg.DatabaseDriver)

	if cfg.SeedFile == "" {
		return db, nil
	}

	seed, err := store.LoadSeed(cfg.SeedFile)
	if err == nil {
		err = db.ApplySeed(ctx, seed)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply seed file: %w", err)
	}
	logger.Info("Seed applied",
		"file", cfg.SeedFile,
		"clients", len(seed.Clients),
		"users", len(seed.Users))
	return db, nil
}
