package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/formpost/internal/config"
	"github.com/aretw0/formpost/pkg/adapters/fs"
	"github.com/aretw0/formpost/pkg/adapters/postgres"
	"github.com/aretw0/formpost/pkg/core"
)

// openStore builds the configured record store. The returned func releases
// its resources.
func openStore(ctx context.Context, s config.StoreConfig, o *options) (core.RecordStore, func(), error) {
	switch s.Kind {
	case config.StoreFS, "":
		store := fs.NewStore(fs.Config{
			Path:         s.Path,
			AutoInit:     true,
			Versioned:    s.Versioned,
			ReadOnly:     s.ReadOnly,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
		if err := store.Initialize(ctx); err != nil {
			return nil, nil, fmt.Errorf("init fs store: %w", err)
		}
		if o.logger != nil {
			o.logger.Debug("fs store ready", "path", s.Path, "versioned", s.Versioned, "read_only", s.ReadOnly)
		}
		return store, func() {}, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, s.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres store: %w", err)
		}
		if o.logger != nil {
			o.logger.Debug("postgres store ready")
		}
		return postgres.NewStore(pool, postgres.Config{Logger: o.logger}), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", core.ErrUnknownStore, s.Kind)
	}
}
