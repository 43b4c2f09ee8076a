package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// StoreRedisClient struct holds the Redis client and context
type StoreRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewStoreRedisClient initializes a new Redis client with default options
func NewStoreRedisClient(ctx context.Context, client *redis.Client) *StoreRedisClient {
	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis")

	return &StoreRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with the given time-to-live. A zero
// ttl stores the key without expiry.
func (r *StoreRedisClient) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *StoreRedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// Keys returns the keys matching a pattern.
func (r *StoreRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

// Del removes a key.
func (r *StoreRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *StoreRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}
