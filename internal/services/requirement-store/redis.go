package requirementstore

import (
	"context"
	"encoding/json"
	"time"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the log in a sorted set scored by ID. INCR on a separate
// key hands out IDs, so concurrent appenders across processes stay ordered.
type RedisStore struct {
	client *redis.Client
	seqKey string
	logKey string
	now    Clock
}

func NewRedisStore(client *redis.Client, keyPrefix string, now Clock) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{
		client: client,
		seqKey: keyPrefix + ":seq",
		logKey: keyPrefix + ":log",
		now:    now,
	}
}

func (s *RedisStore) Append(ctx context.Context, candidate models.RequirementCandidate) (*models.Requirement, error) {
	id, err := s.client.Incr(ctx, s.seqKey).Result()
	if err != nil {
		return nil, apperrors.NewStorageFailedError("append", err)
	}

	req := models.NewRequirement(id, candidate, s.now())
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewStorageFailedError("append", err)
	}

	if err := s.client.ZAdd(ctx, s.logKey, redis.Z{Score: float64(id), Member: string(payload)}).Err(); err != nil {
		return nil, apperrors.NewStorageFailedError("append", err)
	}
	return &req, nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.Requirement, error) {
	members, err := s.client.ZRange(ctx, s.logKey, 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewStorageFailedError("list", err)
	}

	out := make([]models.Requirement, 0, len(members))
	for _, m := range members {
		var req models.Requirement
		if err := json.Unmarshal([]byte(m), &req); err != nil {
			return nil, apperrors.NewStorageFailedError("list", err)
		}
		out = append(out, req)
	}
	return out, nil
}

var _ Store = (*RedisStore)(nil)
