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

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (facilities.Repository, error) {
	repo := &repository{
		collection: db.Collection(facilities.CollectionName),
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
				{Key: "organizationId", Value: 1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2}).
				SetName("UniqueOrganizationFacilityName"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*facilities.Facility, error) {
	facilityId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, facilities.ErrNotFound
	}

	facility := &facilities.Facility{}
	err = r.collection.FindOne(ctx, bson.M{"_id": facilityId}).Decode(facility)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, facilities.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching facility: %w", err)
	}

	return facility, nil
}

func (r *repository) List(ctx context.Context, organizationId string) ([]*facilities.Facility, error) {
	orgId, err := primitive.ObjectIDFromHex(organizationId)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organizationId": orgId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing facilities: %w", err)
	}

	result := make([]*facilities.Facility, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding facilities: %w", err)
	}
	return result, nil
}

func (r *repository) Create(ctx context.Context, facility *facilities.Facility) (*facilities.Facility, error) {
	now := store.Now()
	facility.Id = nil
	facility.CreatedTime = now
	facility.UpdatedTime = now
	if facility.DeviceTypes == nil {
		facility.DeviceTypes = []string{}
	}

	res, err := r.collection.InsertOne(ctx, facility)
	if store.IsDuplicateKeyError(err) {
		return nil, facilities.ErrDuplicateName
	} else if err != nil {
		return nil, fmt.Errorf("error creating facility: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	facility.Id = &id
	return facility, nil
}

func (r *repository) UpdateDeviceTypes(ctx context.Context, id string, deviceTypes []string, defaultDeviceType *string) (*facilities.Facility, error) {
	facilityId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, facilities.ErrNotFound
	}
	if deviceTypes == nil {
		deviceTypes = []string{}
	}

	update := bson.M{
		"$set": bson.M{
			"deviceTypes": deviceTypes,
			"updatedTime": store.Now(),
		},
	}
	if defaultDeviceType != nil {
		update["$set"].(bson.M)["defaultDeviceType"] = *defaultDeviceType
	} else {
		update["$unset"] = bson.M{"defaultDeviceType": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	facility := &facilities.Facility{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": facilityId}, update, opts).Decode(facility)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, facilities.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error updating facility device types: %w", err)
	}

	return facility, nil
}

var _ facilities.Repository = &repository{}
