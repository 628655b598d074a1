package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/quicknotes/internal/config"
	"github.com/iudanet/quicknotes/internal/storage"
	"github.com/iudanet/quicknotes/internal/storage/boltdb"
	"github.com/iudanet/quicknotes/internal/storage/sqlite"
)

// OpenStorage opens the key-value backend selected in cfg.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.KeyValue, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		s, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return storage.NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
}
