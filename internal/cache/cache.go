package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a namespaced key/value store backed by redis
type Cache struct {
	client redis.UniversalClient
}

// New connects to a single redis node.
func New(addr, password string) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}))
}

// NewWithClient wraps an existing client (single node or cluster).
func NewWithClient(client redis.UniversalClient) *Cache {
	return &Cache{client: client}
}

func key(namespace, k string) string {
	return namespace + ":" + k
}

func (c *Cache) Set(ctx context.Context, namespace, k string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key(namespace, k), value, ttl).Err()
}

// Get returns redis.Nil when the key does not exist.
func (c *Cache) Get(ctx context.Context, namespace, k string) ([]byte, error) {
	return c.client.Get(ctx, key(namespace, k)).Bytes()
}

func (c *Cache) Delete(ctx context.Context, namespace, k string) error {
	return c.client.Del(ctx, key(namespace, k)).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
