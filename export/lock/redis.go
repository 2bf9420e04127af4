package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisLease struct {
	key    string
	name   string
	owner  string
	client redis.Cmdable
}

func (l *redisLease) Name() string {
	return l.name
}

func (l *redisLease) Owner() string {
	return l.owner
}

// Release deletes the key only if this lease still owns it
func (l *redisLease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.owner).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("error releasing lock %s: %w", l.name, err)
	}
	return nil
}

// RedisLocker takes locks with SET NX PX. The key expiry releases the lock
// if the holder never does.
type RedisLocker struct {
	client    redis.Cmdable
	keyPrefix string
	logger    *zap.SugaredLogger
}

func NewRedisLocker(client redis.Cmdable, keyPrefix string, logger *zap.SugaredLogger) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = "testledger"
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func NewRedisLockerFromConfig(cfg Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis connection failed: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return NewRedisLocker(client, cfg.KeyPrefix, logger), nil
}

func (r *RedisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error) {
	lease := &redisLease{
		key:    fmt.Sprintf("%s:lock:%s", r.keyPrefix, name),
		name:   name,
		owner:  uuid.NewString(),
		client: r.client,
	}

	acquired, err := r.client.SetNX(ctx, lease.key, lease.owner, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("error acquiring lock %s: %w", name, err)
	}
	if !acquired {
		return nil, false, nil
	}

	r.logger.Debugw("lock acquired", "lock", name, "owner", lease.owner, "ttl", ttl)
	return lease, true, nil
}

var _ Locker = &RedisLocker{}
