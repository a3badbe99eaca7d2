package redis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"buildings-server/dao"
	"buildings-server/db"
)

// STASH_KEY_FORMAT_V1 is account, project, kind, path.
const STASH_KEY_FORMAT_V1 = "stash_v1:%s:%s:%s:%s"

// RedisStashDAO handles stash operations using Redis.
type RedisStashDAO struct {
	client db.RedisClient
}

// NewRedisStashDAO initializes a RedisStashDAO with the Redis client.
func NewRedisStashDAO(client db.RedisClient) *RedisStashDAO {
	return &RedisStashDAO{client: client}
}

// StashKey returns the Redis key an artifact is stored under.
func StashKey(account, project, kind, path string) string {
	return fmt.Sprintf(STASH_KEY_FORMAT_V1, account, project, kind, path)
}

// Find returns the stashed content, or dao.ErrNotFound.
func (d *RedisStashDAO) Find(ctx context.Context, account, project, kind, path string) ([]byte, error) {
	key := StashKey(account, project, kind, path)
	content, err := d.client.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, dao.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[RedisStashDAO] failed to get %s: %w", key, err)
	}
	return content, nil
}

// Save stores content under the derived key, replacing any previous value.
func (d *RedisStashDAO) Save(ctx context.Context, account, project, kind, path string, content []byte) error {
	key := StashKey(account, project, kind, path)
	if err := d.client.Set(ctx, key, content); err != nil {
		return fmt.Errorf("[RedisStashDAO] failed to set %s: %w", key, err)
	}
	log.Printf("[RedisStashDAO] Stashed %d bytes at %s", len(content), key)
	return nil
}
