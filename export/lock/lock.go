// Package lock provides cross-instance advisory locks with lease expiry, so a
// crashed holder cannot wedge the lock forever.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	DriverMongo = "mongo"
	DriverRedis = "redis"
)

//go:generate mockgen --build_flags=--mod=mod -source=./lock.go -destination=./test/mock_lock.go -package test

type Locker interface {
	// TryLock acquires the named lock for ttl. It returns false without an
	// error when another holder owns an unexpired lease.
	TryLock(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error)
}

type Lease interface {
	Name() string
	Owner() string
	Release(ctx context.Context) error
}

type Config struct {
	Driver        string `envconfig:"TESTLEDGER_EXPORT_LOCK_DRIVER" default:"mongo"`
	RedisAddress  string `envconfig:"TESTLEDGER_REDIS_ADDRESS" default:"localhost:6379"`
	RedisPassword string `envconfig:"TESTLEDGER_REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"TESTLEDGER_REDIS_DB" default:"0"`
	KeyPrefix     string `envconfig:"TESTLEDGER_REDIS_KEY_PREFIX" default:"testledger"`
}

func NewConfig() (Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	return cfg, err
}

type Params struct {
	fx.In

	Config    Config
	Database  *mongo.Database
	Logger    *zap.SugaredLogger
	Lifecycle fx.Lifecycle
}

// NewLocker returns the locker selected by the configured driver
func NewLocker(p Params) (Locker, error) {
	switch p.Config.Driver {
	case DriverMongo, "":
		return NewMongoLocker(p.Database, p.Logger, p.Lifecycle), nil
	case DriverRedis:
		return NewRedisLockerFromConfig(p.Config, p.Logger, p.Lifecycle)
	default:
		return nil, fmt.Errorf("unsupported lock driver %q", p.Config.Driver)
	}
}

var Module = fx.Provide(
	NewConfig,
	NewLocker,
)
