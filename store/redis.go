package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/storyverse/server/models"
)

// RedisStore keeps one hash per user: field = date-key, value = JSON record.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(userID string) string {
	return "writingActivity:" + userID
}

func (s *RedisStore) Get(ctx context.Context, userID, date string) (*models.WritingActivityDay, error) {
	raw, err := s.rdb.HGet(ctx, redisKey(userID), date).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s/%s: %w", userID, date, err)
	}

	return decodeJSON(date, raw)
}

func (s *RedisStore) Put(ctx context.Context, userID string, day *models.WritingActivityDay) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", userID, day.Date, err)
	}

	if err := s.rdb.HSet(ctx, redisKey(userID), day.Date, raw).Err(); err != nil {
		return fmt.Errorf("redis put %s/%s: %w", userID, day.Date, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, userID string) ([]*models.WritingActivityDay, error) {
	all, err := s.rdb.HGetAll(ctx, redisKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", userID, err)
	}

	out := make([]*models.WritingActivityDay, 0, len(all))
	for date, raw := range all {
		day, err := decodeJSON(date, []byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

func decodeJSON(date string, raw []byte) (*models.WritingActivityDay, error) {
	var day models.WritingActivityDay
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, fmt.Errorf("decode %s: %w", date, err)
	}
	day.Date = date
	return &day, nil
}
