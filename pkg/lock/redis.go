package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cofoodie/config"
)

const (
	redisLockKey = "cofoodie:sheet:lock"
	redisLockTTL = 30 * time.Second // safety expiry if a holder dies mid-request
	pollInterval = 50 * time.Millisecond
)

// redisLocker implements the global lock with SET NX PX so several endpoint
// replicas can share one serialization point.
type redisLocker struct {
	rdb *redis.Client
}

func newRedisLocker() (*redisLocker, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("lock: redis ping: %w", err)
	}
	return &redisLocker{rdb: rdb}, nil
}

func (l *redisLocker) TryLock(ctx context.Context, wait time.Duration) (func(), bool) {
	deadline := time.Now().Add(wait)
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	for {
		ok, err := l.rdb.SetNX(ctx, redisLockKey, token, redisLockTTL).Result()
		if err == nil && ok {
			var released bool
			return func() {
				if released {
					return
				}
				released = true
				// Delete only our own token so an expired-and-reacquired
				// lock is not released by the previous holder.
				l.rdb.Eval(context.Background(),
					`if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`,
					[]string{redisLockKey}, token)
			}, true
		}

		if time.Now().After(deadline) || ctx.Err() != nil {
			return func() {}, false
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return func() {}, false
		}
	}
}
