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

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (results.Repository, error) {
	repo := &repository{
		db:         db,
		collection: db.Collection(results.CollectionName),
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
	db         *mongo.Database
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sequence", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueSequence"),
		},
		{
			Keys: bson.D{
				{Key: "facilityId", Value: 1},
				{Key: "testOrderId", Value: 1},
				{Key: "sequence", Value: -1},
			},
			Options: options.Index().
				SetName("FacilityOrderSequence"),
		},
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "sequence", Value: -1},
			},
			Options: options.Index().
				SetName("PatientSequence"),
		},
		{
			Keys: bson.D{
				{Key: "createdTime", Value: 1},
				{Key: "sequence", Value: 1},
			},
			Options: options.Index().
				SetName("CreatedTimeSequence"),
		},
	})
	return err
}

// Create assigns the id, sequence and creation time and inserts the event.
// It must run in the same transaction as the order update it accompanies.
func (r *repository) Create(ctx context.Context, event *results.TestEvent) (*results.TestEvent, error) {
	sequence, err := store.NextSequence(ctx, r.db, results.SequenceName)
	if err != nil {
		return nil, err
	}

	id := primitive.NewObjectID()
	event.Id = &id
	event.Sequence = sequence
	event.CreatedTime = store.Now()

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating test event: %w", err)
	}
	return event, nil
}

func (r *repository) Get(ctx context.Context, id string) (*results.TestEvent, error) {
	eventId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, results.ErrNotFound
	}

	event := &results.TestEvent{}
	err = r.collection.FindOne(ctx, bson.M{"_id": eventId}).Decode(event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, results.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching test event: %w", err)
	}
	return event, nil
}

func (r *repository) LatestForPatient(ctx context.Context, patientId primitive.ObjectID, facilityIds []primitive.ObjectID) (*results.TestEvent, error) {
	if len(facilityIds) == 0 {
		return nil, results.ErrNotFound
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "sequence", Value: -1}})
	selector := bson.M{
		"patientId":  patientId,
		"facilityId": bson.M{"$in": facilityIds},
	}

	event := &results.TestEvent{}
	err := r.collection.FindOne(ctx, selector, opts).Decode(event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, results.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching latest test event: %w", err)
	}
	return event, nil
}

// latestPerOrder keeps only the most recently created event of every order
func latestPerOrder(facilityId primitive.ObjectID) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"facilityId": facilityId}},
		bson.M{"$sort": bson.D{{Key: "testOrderId", Value: 1}, {Key: "sequence", Value: -1}}},
		bson.M{"$group": bson.M{"_id": "$testOrderId", "event": bson.M{"$first": "$$ROOT"}}},
		bson.M{"$replaceRoot": bson.M{"newRoot": "$event"}},
	}
}

func (r *repository) ListForFacility(ctx context.Context, facilityId primitive.ObjectID, pagination store.Pagination) ([]*results.TestEvent, error) {
	pagination = pagination.Normalize()
	pipeline := append(latestPerOrder(facilityId),
		bson.M{"$sort": bson.D{{Key: "createdTime", Value: -1}, {Key: "sequence", Value: -1}}},
		bson.M{"$skip": pagination.Offset},
		bson.M{"$limit": pagination.Limit},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, fmt.Errorf("error listing test events: %w", err)
	}

	events := make([]*results.TestEvent, 0, pagination.Limit)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding test events: %w", err)
	}
	return events, nil
}

func (r *repository) CountForFacility(ctx context.Context, facilityId primitive.ObjectID) (int64, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"facilityId": facilityId}},
		bson.M{"$group": bson.M{"_id": "$testOrderId"}},
		bson.M{"$count": "count"},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error counting test events: %w", err)
	}

	var counts []struct {
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &counts); err != nil {
		return 0, fmt.Errorf("error decoding test event count: %w", err)
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Count, nil
}

func (r *repository) CountResults(ctx context.Context, filter results.CountFilter) (*results.ResultCounts, error) {
	counts := &results.ResultCounts{}
	if len(filter.PatientIds) == 0 {
		return counts, nil
	}

	match := bson.M{
		"facilityId": filter.FacilityId,
		"patientId":  bson.M{"$in": filter.PatientIds},
	}
	if filter.Since != nil {
		match["createdTime"] = bson.M{"$gte": *filter.Since}
	}

	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"positive": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$result", orders.ResultPositive}}, 1, 0},
			}},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error counting results: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		if err := cursor.Decode(counts); err != nil {
			return nil, fmt.Errorf("error decoding result counts: %w", err)
		}
	}
	return counts, cursor.Err()
}

func (r *repository) DistinctPatientIds(ctx context.Context, facilityId primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "patientId", bson.M{"facilityId": facilityId})
	if err != nil {
		return nil, fmt.Errorf("error listing tested patients: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *repository) ListWindow(ctx context.Context, window results.Window) ([]*results.TestEvent, error) {
	selector := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"createdTime": bson.M{"$gt": window.After}},
				bson.M{"createdTime": window.After, "sequence": bson.M{"$gt": window.AfterSequence}},
			}},
			bson.M{"createdTime": bson.M{"$lte": window.Until}},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdTime", Value: 1}, {Key: "sequence", Value: 1}}).
		SetLimit(int64(window.Limit))

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing test events in export window: %w", err)
	}

	events := make([]*results.TestEvent, 0, window.Limit)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding test events in export window: %w", err)
	}
	return events, nil
}

var _ results.Repository = &repository{}
