package config

import (
	"fmt"

	"github.com/go-redis/redis"
	log "github.com/sirupsen/logrus"
)

// InitRedis connects the Redis client backing the cache layer.
func InitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
		Password: getEnv("REDIS_PASSWORD", ""),
	})

	if _, err := client.Ping().Result(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	log.Info("redis connected")
	return client
}
