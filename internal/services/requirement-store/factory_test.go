package requirementstore

import (
	"context"
	"testing"

	"pbf-marketplace/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		store, closeFn, err := Open(context.Background(), config.StorageConfig{}, nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.StorageConfig{
			Backend: config.BackendRedis,
			Redis:   config.RedisConfig{Address: mr.Addr(), KeyPrefix: "pbf:requirements"},
		}

		store, closeFn, err := Open(context.Background(), cfg, nil)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &RedisStore{}, store)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := Open(context.Background(), config.StorageConfig{Backend: "cassandra"}, nil)
		assert.Error(t, err)
	})
}
