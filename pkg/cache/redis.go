package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Client is nil when Redis is not configured or unreachable; every helper
// in this package degrades to a no-op in that case.
var Client *redis.Client

// InitRedis connects to Redis if an address is configured. The cache is an
// optional accelerator; the server runs without it.
func InitRedis(addr string) {
	if addr == "" {
		logrus.Info("Redis not configured, search cache disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable, continuing without cache")
		Client = nil
		return
	}
	logrus.WithField("addr", addr).Info("Connected to Redis")
}
