package requirementstore

import (
	"context"
	"errors"
	"testing"

	apperrors "pbf-marketplace/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test:requirements", fixedClock()), mr
}

func TestRedisStore_AppendAndList(t *testing.T) {
	store, mr := newMiniRedisStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, candidate("tomato"))
	require.NoError(t, err)
	second, err := store.Append(ctx, candidate("potato"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	seq, err := mr.Get("test:requirements:seq")
	require.NoError(t, err)
	assert.Equal(t, "2", seq)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tomato", all[0].Product)
	assert.Equal(t, "potato", all[1].Product)
	assert.True(t, all[0].Quantity.Decimal().Equal(first.Quantity.Decimal()))
	assert.Equal(t, first.CreatedAt, all[0].CreatedAt)
}

func TestRedisStore_ListEmpty(t *testing.T) {
	store, _ := newMiniRedisStore(t)

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestRedisStore_IncrFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectIncr("test:requirements:seq").SetErr(errors.New("READONLY"))

	_, err := NewRedisStore(client, "test:requirements", fixedClock()).Append(context.Background(), candidate("tomato"))

	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStorageFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ListFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectZRange("test:requirements:log", 0, -1).SetErr(errors.New("timeout"))

	_, err := NewRedisStore(client, "test:requirements", nil).List(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
