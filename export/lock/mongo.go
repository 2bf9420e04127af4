package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/store"
)

const CollectionName = "locks"

type mongoLease struct {
	Id           string    `bson:"_id"`
	OwnerId      string    `bson:"owner"`
	AcquiredTime time.Time `bson:"acquiredTime"`
	ExpiresAt    time.Time `bson:"expiresAt"`

	collection *mongo.Collection
}

func (l *mongoLease) Name() string {
	return l.Id
}

func (l *mongoLease) Owner() string {
	return l.OwnerId
}

func (l *mongoLease) Release(ctx context.Context) error {
	if _, err := l.collection.DeleteOne(ctx, bson.M{"_id": l.Id, "owner": l.OwnerId}); err != nil {
		return fmt.Errorf("error releasing lock %s: %w", l.Id, err)
	}
	return nil
}

// MongoLocker stores one lease document per lock. A lease can be taken over
// once it expires. The TTL index only garbage collects stale documents.
type MongoLocker struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func NewMongoLocker(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) *MongoLocker {
	locker := &MongoLocker{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return locker.Initialize(ctx)
		},
	})

	return locker
}

func (m *MongoLocker) Initialize(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "expiresAt", Value: 1},
			},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("ExpiresAt"),
		},
	})
	return err
}

func (m *MongoLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error) {
	now := store.Now()
	lease := &mongoLease{
		Id:           name,
		OwnerId:      uuid.NewString(),
		AcquiredTime: now,
		ExpiresAt:    now.Add(ttl),
		collection:   m.collection,
	}

	// The filter only matches an expired lease. When the lease is held the
	// upsert attempts an insert with the same _id and fails on the unique key.
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": name, "expiresAt": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{
			"owner":        lease.OwnerId,
			"acquiredTime": lease.AcquiredTime,
			"expiresAt":    lease.ExpiresAt,
		}},
		options.Update().SetUpsert(true),
	)
	if store.IsDuplicateKeyError(err) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("error acquiring lock %s: %w", name, err)
	}

	m.logger.Debugw("lock acquired", "lock", name, "owner", lease.OwnerId, "expiresAt", lease.ExpiresAt)
	return lease, true, nil
}

var _ Locker = &MongoLocker{}
