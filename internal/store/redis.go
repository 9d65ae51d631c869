package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/belatro/belatro-server/engine"
)

// keyPrefix namespaces game keys in a shared Redis instance.
const keyPrefix = "belot:game:"

// RedisStore persists games as JSON values in Redis. A zero TTL keeps
// games until explicitly deleted; a positive TTL lets abandoned games
// expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load fetches and deserializes the game.
func (s *RedisStore) Load(ctx context.Context, id string) (*engine.Game, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var g engine.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Save serializes the game and writes it with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, g *engine.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+g.ID, raw, s.ttl).Err()
}

// Delete removes the game key.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
