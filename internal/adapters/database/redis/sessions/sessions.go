package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(token string) string {
	return keyPrefix + token
}

// Get returns the user id bound to token, errorz.ErrNotFound when the session
// does not exist or has expired.
func (s *Storage) Get(ctx context.Context, token string) (uint, error) {
	value, err := s.redis.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorz.ErrNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid session value %q: %w", value, err)
	}
	return uint(userID), nil
}

func (s *Storage) Set(ctx context.Context, token string, userID uint, expiration time.Duration) error {
	return s.redis.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}
