package services

import (
	"context"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/VinukaThejana/nomad/twofa"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockRetryInterval = 25 * time.Millisecond

// Only the holder of the lock may release it
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a redis backed lock that is used to serialize changes to a single user
type Lock struct {
	Client *redis.Client
	// TTL bounds how long a crashed holder can keep the lock
	TTL time.Duration
	// Wait is the longest time spent waiting for the lock
	Wait time.Duration
}

var _ twofa.Locker = (*Lock)(nil)

// Lock is a function that is used to acquire the lock with the given key
func (l *Lock) Lock(ctx context.Context, key string) (unlock func(), err error) {
	ttl, wait := l.TTL, l.Wait
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if wait <= 0 {
		wait = 2 * time.Second
	}

	token := uuid.New().String()
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				err := unlockScript.Run(context.Background(), l.Client, []string{key}, token).Err()
				if err != nil {
					logger.Error(err)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, twofa.ErrLocked
		case <-time.After(lockRetryInterval):
		}
	}
}
