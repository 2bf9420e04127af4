package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/deletions"
	"github.com/labnet/testledger/organizations"
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (organizations.Repository, error) {
	deletionsRepo, err := deletions.NewRepository[organizations.Organization]("organization", db, logger)
	if err != nil {
		return nil, err
	}

	repo := &repository{
		collection:    db.Collection(organizations.CollectionName),
		deletionsRepo: deletionsRepo,
		logger:        logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := repo.Initialize(ctx); err != nil {
				return err
			}
			return repo.deletionsRepo.Initialize(ctx, []string{"_id"})
		},
	})

	return repo, nil
}

type repository struct {
	collection    *mongo.Collection
	deletionsRepo deletions.Repository[organizations.Organization]
	logger        *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "externalId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueExternalId"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*organizations.Organization, error) {
	organizationId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, organizations.ErrNotFound
	}

	return r.findOne(ctx, bson.M{"_id": organizationId})
}

func (r *repository) GetByExternalId(ctx context.Context, externalId string) (*organizations.Organization, error) {
	return r.findOne(ctx, bson.M{"externalId": externalId})
}

func (r *repository) findOne(ctx context.Context, selector bson.M) (*organizations.Organization, error) {
	selector["deletedTime"] = bson.M{"$exists": false}

	organization := &organizations.Organization{}
	err := r.collection.FindOne(ctx, selector).Decode(organization)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, organizations.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching organization: %w", err)
	}

	return organization, nil
}

func (r *repository) Create(ctx context.Context, organization *organizations.Organization) (*organizations.Organization, error) {
	now := store.Now()
	organization.Id = nil
	organization.CreatedTime = now
	organization.UpdatedTime = now
	organization.DeletedTime = nil

	res, err := r.collection.InsertOne(ctx, organization)
	if store.IsDuplicateKeyError(err) {
		return nil, organizations.ErrDuplicateExternalId
	} else if err != nil {
		return nil, fmt.Errorf("error creating organization: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	organization.Id = &id
	return organization, nil
}

func (r *repository) Delete(ctx context.Context, id string) (*organizations.Organization, error) {
	organization, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := store.Now()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": organization.Id, "deletedTime": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"deletedTime": now, "updatedTime": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("error deleting organization: %w", err)
	}
	if res.ModifiedCount == 0 {
		return nil, organizations.ErrNotFound
	}

	organization.DeletedTime = &now
	if err := r.deletionsRepo.Create(ctx, *organization, deletions.Metadata{}); err != nil {
		r.logger.Errorw("unable to archive deleted organization", "organizationId", id, "error", err)
	}

	return organization, nil
}

var _ organizations.Repository = &repository{}

