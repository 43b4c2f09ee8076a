package db

import (
	"time"
)

// RedisClientInterface defines the methods available in the RedisClient
type RedisClient interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(key string) error
}
