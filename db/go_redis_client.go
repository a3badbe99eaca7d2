package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// GoRedisClient is the RedisClient backed by a real Redis server.
type GoRedisClient struct {
	client *redis.Client
}

// NewGoRedisClient wraps client and checks the connection.
func NewGoRedisClient(ctx context.Context, client *redis.Client) (*GoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	log.Println("[GoRedisClient] Connected to Redis")

	return &GoRedisClient{client: client}, nil
}

// Set stores value under key without expiry; stashed artifacts are immutable.
func (r *GoRedisClient) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *GoRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return b, err
}

func (r *GoRedisClient) Ping(ctx context.Context) error {
	_, err := r.client.Ping(ctx).Result()
	return err
}

func (r *GoRedisClient) Close() error {
	return r.client.Close()
}
