package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/pipeline"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "hotspots.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// newRunner builds a pipeline runner with run bookkeeping when the
// store is reachable. Bookkeeping is advisory: a store that cannot be
// opened downgrades to a warning, not a failure.
func newRunner(ctx context.Context) (*pipeline.Runner, func()) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("store unavailable, run bookkeeping disabled", zap.Error(err))
		return pipeline.New(cfg, nil), func() {}
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("store migration failed, run bookkeeping disabled", zap.Error(err))
		st.Close()
		return pipeline.New(cfg, nil), func() {}
	}
	return pipeline.New(cfg, st), func() { st.Close() }
}
