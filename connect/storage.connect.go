package connect

import (
	"context"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/config"
	"github.com/gofiber/storage/redis"
)

// InitRatelimiter is a function that is used to initialize the storage shared by the ratelimiters
func (c *Connector) InitRatelimiter(env *config.Env) {
	store := redis.New(redis.Config{
		Username: env.RedisRatelimiterUsername,
		Password: env.RedisRatelimiterPassword,
		Host:     env.RedisRatelimiterHost,
		Port:     env.RedisRatelimiterPort,
	})
	if err := store.Conn().Ping(context.Background()).Err(); err != nil {
		logger.Errorf(err)
	}

	c.Ratelimiter = store
}
