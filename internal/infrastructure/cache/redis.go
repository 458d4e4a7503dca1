package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("✅ Redis connection established")
	return client, nil
}

// RedisStore shares cached categories between API replicas
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store; keys are namespaced by prefix
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "meeting-minutes:entity-type:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (rs *RedisStore) Get(ctx context.Context, key string) (*entities.EntityType, bool, error) {
	raw, err := rs.client.Get(ctx, rs.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var t entities.EntityType
	if err := json.Unmarshal(raw, &t); err != nil {
		// Corrupt entry: drop it and treat as a miss
		_ = rs.client.Del(ctx, rs.prefix+key).Err()
		return nil, false, nil
	}
	return &t, true, nil
}

func (rs *RedisStore) Set(ctx context.Context, key string, value *entities.EntityType) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, rs.prefix+key, raw, rs.ttl).Err()
}

func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.prefix+key).Err()
}
