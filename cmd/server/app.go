package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/mortgagecalc-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/mortgagecalc-backend/internal/config"
	"github.com/simaogato/mortgagecalc-backend/internal/domain"
	"github.com/simaogato/mortgagecalc-backend/internal/logging"
)

// setup loads and validates the configuration and builds the root logger
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// store bundles the repositories of the configured driver
type store struct {
	Properties domain.PropertyRepository
	Mortgages  domain.MortgageRepository
	close      func() error
}

func (s *store) Close() error {
	return s.close()
}

// openStore migrates and connects to the configured database
func openStore(cfg *config.Config, logger *zap.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
		return &store{
			Properties: sqlite.NewPropertyRepository(db),
			Mortgages:  sqlite.NewMortgageRepository(db),
			close:      db.Close,
		}, nil

	case config.StoreDriverPostgres:
		db, err := connectPostgres(cfg.DBConnStr, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(cfg.DBConnStr); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("using postgres store")
		return &store{
			Properties: postgres.NewPropertyRepository(db),
			Mortgages:  postgres.NewMortgageRepository(db),
			close:      db.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// connectPostgres retries while the database container is still starting
func connectPostgres(connStr string, logger *zap.Logger) (*postgres.DB, error) {
	const attempts = 5

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := postgres.NewDB(connStr)
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("database not ready",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(err))
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}
