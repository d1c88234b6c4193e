package session

import (
	"context"
	"fmt"
	"time"

	"rentalhub/internal/infra"
	"rentalhub/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:refresh:"

// Store keeps refresh tokens in redis, keyed by the opaque token value. TTL
// expiry is the only invalidation path besides explicit delete.
type Store struct {
	client *redis.Client
}

func NewClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	cleanup := func() { _ = client.Close() }
	return client, cleanup, nil
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to save session", err)
	}
	return nil
}

func (s *Store) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve session", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("stored session value is invalid", err)
	}
	return userID, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete session", err)
	}
	return nil
}
