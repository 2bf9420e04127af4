package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/patientlinks"
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (patientlinks.Repository, error) {
	repo := &repository{
		collection: db.Collection(patientlinks.CollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "orderId", Value: 1},
				{Key: "createdTime", Value: -1},
			},
			Options: options.Index().
				SetName("OrderCreatedTime"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, link *patientlinks.PatientLink) (*patientlinks.PatientLink, error) {
	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		return nil, fmt.Errorf("error creating patient link: %w", err)
	}
	return link, nil
}

func (r *repository) Get(ctx context.Context, id string) (*patientlinks.PatientLink, error) {
	link := &patientlinks.PatientLink{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(link)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, patientlinks.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching patient link: %w", err)
	}
	return link, nil
}

// Expire sets the expiry to now. Links that already expired keep their original expiry.
func (r *repository) Expire(ctx context.Context, id string) error {
	now := store.Now()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "expiresAt": bson.M{"$gt": now}},
		bson.M{"$set": bson.M{"expiresAt": now}},
	)
	if err != nil {
		return fmt.Errorf("error expiring patient link: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

var _ patientlinks.Repository = &repository{}
