package redis

import (
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// ErrCorruptVector is returned when a stored value cannot be decoded as a vector.
var ErrCorruptVector = errors.New("redis: stored value is not a float32 vector")

// IsNilError checks if the error is a "key does not exist" reply.
func IsNilError(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// IsClosedError checks if the error is a "client is closed" error.
func IsClosedError(err error) bool {
	return errors.Is(err, goredis.ErrClosed)
}
