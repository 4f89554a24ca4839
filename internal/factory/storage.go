package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/config"
	"github.com/claralima1/Planner/internal/store"
	"github.com/claralima1/Planner/internal/store/jsonfile"
	"github.com/claralima1/Planner/internal/store/memory"
	"github.com/claralima1/Planner/internal/store/postgres"
	"github.com/claralima1/Planner/internal/store/sqlite"
)

// NewStore selects the store driver according to cfg.StoreDriver.
// Callers should close the result when it implements io.Closer.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		st = memory.New()
		log.Info().Str("driver", cfg.StoreDriver).Msg("using in-memory store; data is lost on restart")
	case config.DriverFile:
		path := cfg.DataFilePath()
		st = jsonfile.New(path)
		log.Info().Str("driver", cfg.StoreDriver).Str("path", path).Msg("using JSON file store")
	case config.DriverSQLite:
		st, err = openSQLite(cfg.SQLitePath)
		if err == nil {
			log.Info().Str("driver", cfg.StoreDriver).Str("path", cfg.SQLitePath).Msg("using sqlite store")
		}
	case config.DriverPostgres:
		st, err = openPostgres(ctx, cfg, log)
		if err == nil {
			log.Info().Str("driver", cfg.StoreDriver).Msg("using postgres store")
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	if cfg.ResetOnStart {
		if err := st.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset store: %w", err)
		}
		log.Warn().Str("driver", cfg.StoreDriver).Msg("store reset on start")
	}
	return st, nil
}

// openSQLite and openPostgres return store.Store so a typed nil pointer never
// leaks into the interface on error.
func openSQLite(path string) (store.Store, error) {
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	s, err := postgres.OpenWithRetry(ctx, cfg.PostgresDSN, cfg.StartupTimeout(), log)
	if err != nil {
		return nil, err
	}
	return s, nil
}
