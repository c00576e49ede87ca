package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when no identity is stored for a credential.
var ErrCacheMiss = errors.New("cache miss")

// IdentityStore reads and revokes identity records written by the login flow.
type IdentityStore interface {
	Get(ctx context.Context, credential string) (string, error)
	Delete(ctx context.Context, credential string) error
}

type redisIdentityStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

func NewRedisClient(url string, poolSize int) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if poolSize > 0 {
		opt.PoolSize = poolSize
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func NewIdentityStore(client redis.UniversalClient, keyPrefix string) IdentityStore {
	return &redisIdentityStore{client: client, keyPrefix: keyPrefix}
}

// Key returns the redis key holding the identity bound to credential.
// Credentials are hashed so raw tokens never appear in the keyspace.
func Key(prefix, credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return prefix + hex.EncodeToString(sum[:])
}

func (s *redisIdentityStore) Get(ctx context.Context, credential string) (string, error) {
	val, err := s.client.Get(ctx, Key(s.keyPrefix, credential)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to get identity from redis: %w", err)
	}
	return val, nil
}

// Delete is idempotent: deleting a missing record succeeds.
func (s *redisIdentityStore) Delete(ctx context.Context, credential string) error {
	if err := s.client.Del(ctx, Key(s.keyPrefix, credential)).Err(); err != nil {
		return fmt.Errorf("failed to delete identity from redis: %w", err)
	}
	return nil
}
