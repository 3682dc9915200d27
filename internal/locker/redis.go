package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	lockKeyPrefix  = "relayer-lock:"
	lockRetryDelay = 50 * time.Millisecond
)

// Deletes the key only if it still holds our token, so an expired lease
// taken over by another process is never released by us.
var releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds a redis lease with a TTL on top of the local lock, so
// several service replicas sharing one relayer key allocate nonces in turn.
type RedisLocker struct {
	pool  *redis.Pool
	ttl   time.Duration
	local *LocalLocker
}

func timeoutDialOptions() []redis.DialOption {
	return []redis.DialOption{
		redis.DialConnectTimeout(5 * time.Second),
		redis.DialReadTimeout(5 * time.Second),
		redis.DialWriteTimeout(5 * time.Second),
	}
}

func NewRedisLocker(address string, ttl time.Duration) *RedisLocker {
	pool := &redis.Pool{
		MaxIdle:     5,
		IdleTimeout: 240 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", address, timeoutDialOptions()...) },
	}
	return &RedisLocker{pool: pool, ttl: ttl, local: NewLocalLocker()}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	releaseLocal, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}

	redisKey := lockKeyPrefix + key
	token := uuid.New().String()
	if err := l.acquire(ctx, redisKey, token); err != nil {
		releaseLocal()
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := l.release(redisKey, token); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to release redis lock, it will expire")
			}
			releaseLocal()
		})
	}, nil
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.tryAcquire(ctx, key, token)
		if err != nil {
			return fmt.Errorf("failed to acquire redis lock %s: %w", key, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}

func (l *RedisLocker) tryAcquire(ctx context.Context, key, token string) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	_, err = redis.String(conn.Do("SET", key, token, "NX", "PX", l.ttl.Milliseconds()))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.ErrNil) {
		return false, nil
	}
	return false, err
}

func (l *RedisLocker) release(key, token string) error {
	conn := l.pool.Get()
	defer conn.Close()
	_, err := releaseScript.Do(conn, key, token)
	return err
}

func (l *RedisLocker) Ping() error {
	conn := l.pool.Get()
	defer conn.Close()
	_, err := conn.Do("PING")
	return err
}

func (l *RedisLocker) Close() error {
	return l.pool.Close()
}
