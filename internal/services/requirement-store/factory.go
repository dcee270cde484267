package requirementstore

import (
	"context"
	"fmt"

	"pbf-marketplace/internal/common/config"
	"pbf-marketplace/internal/common/database"
)

// Open builds the backend selected by cfg.Backend. The returned closer
// releases any connection the backend holds.
func Open(ctx context.Context, cfg config.StorageConfig, now Clock) (Store, func() error, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(now), func() error { return nil }, nil

	case config.BackendPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgresStore(db, now)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case config.BackendRedis:
		client, err := database.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix, now), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
