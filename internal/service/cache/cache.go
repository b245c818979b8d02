package cache

import "time"

// BytesCache stores raw bytes with a TTL. Used for memoizing whole
// marshalled responses; backed by memory or Redis depending on config.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
