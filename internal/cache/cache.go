// Package cache abstracts the byte cache used for CRM contact snapshots
// and downloaded Drive spreadsheets. In production it is backed by Redis
// through the Fiber storage driver; tests and single-node deployments use
// the in-memory implementation.
package cache

import (
	"time"

	"github.com/gofiber/storage/redis/v3"
)

// Cache is the subset of the Fiber storage contract the service needs.
// A miss returns (nil, nil), matching the storage drivers.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// NewRedis connects to Redis by URL (redis://host:port/db).
func NewRedis(url string) Cache {
	return redis.New(redis.Config{URL: url})
}
