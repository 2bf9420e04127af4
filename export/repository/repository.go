package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/export"
	"github.com/labnet/testledger/store"
)

var errRunNotFound = fmt.Errorf("export run not found")

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (export.Repository, error) {
	repo := &repository{
		collection: db.Collection(export.CollectionName),
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
				{Key: "status", Value: 1},
				{Key: "latestRecordedTime", Value: -1},
				{Key: "latestRecordedSequence", Value: -1},
			},
			Options: options.Index().
				SetName("StatusLatestRecorded"),
		},
		{
			Keys: bson.D{
				{Key: "startedTime", Value: -1},
			},
			Options: options.Index().
				SetName("StartedTime"),
		},
	})
	return err
}

func (r *repository) LatestSuccess(ctx context.Context) (*export.Run, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "latestRecordedTime", Value: -1},
		{Key: "latestRecordedSequence", Value: -1},
		{Key: "_id", Value: -1},
	})

	run := &export.Run{}
	err := r.collection.FindOne(ctx, bson.M{"status": export.RunStatusSuccess}, opts).Decode(run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, export.ErrNoWatermark
	} else if err != nil {
		return nil, fmt.Errorf("error fetching latest successful export run: %w", err)
	}

	return run, nil
}

func (r *repository) Start(ctx context.Context, startedTime time.Time, watermark export.Watermark) (*export.Run, error) {
	run := &export.Run{
		StartedTime:              startedTime,
		EarliestRecordedTime:     watermark.Time,
		EarliestRecordedSequence: watermark.Sequence,
		Status:                   export.RunStatusRunning,
	}
	return r.insert(ctx, run)
}

func (r *repository) Seed(ctx context.Context, at time.Time) (*export.Run, error) {
	now := store.Now()
	at = at.UTC().Truncate(time.Millisecond)
	run := &export.Run{
		StartedTime:          now,
		EarliestRecordedTime: at,
		LatestRecordedTime:   &at,
		Status:               export.RunStatusSuccess,
		FinishedTime:         &now,
	}
	return r.insert(ctx, run)
}

func (r *repository) insert(ctx context.Context, run *export.Run) (*export.Run, error) {
	res, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("error creating export run: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	run.Id = &id
	r.logger.Debugw("created export run", "runId", id.Hex(), "status", run.Status)
	return run, nil
}

func (r *repository) MarkRowCount(ctx context.Context, id primitive.ObjectID, count int, latest export.Watermark) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": export.RunStatusRunning},
		bson.M{"$set": bson.M{
			"recordsProcessed":       count,
			"latestRecordedTime":     latest.Time,
			"latestRecordedSequence": latest.Sequence,
		}},
	)
	if err != nil {
		return fmt.Errorf("error updating export run row count: %w", err)
	}
	if res.MatchedCount == 0 {
		return errRunNotFound
	}
	return nil
}

func (r *repository) Finish(ctx context.Context, id primitive.ObjectID, completion export.Completion) (*export.Run, error) {
	finishedTime := completion.FinishedTime
	if finishedTime.IsZero() {
		finishedTime = store.Now()
	}

	set := bson.M{
		"status":                 completion.Status,
		"recordsProcessed":       completion.RecordsProcessed,
		"latestRecordedTime":     completion.Latest.Time,
		"latestRecordedSequence": completion.Latest.Sequence,
		"finishedTime":           finishedTime,
	}
	if completion.ResponseData != "" {
		set["responseData"] = completion.ResponseData
	}
	if completion.ErrorMessage != "" {
		set["errorMessage"] = completion.ErrorMessage
	}
	if completion.Warning != "" {
		set["warning"] = completion.Warning
	}
	if completion.ArchiveKey != "" {
		set["archiveKey"] = completion.ArchiveKey
	}

	// A finished run is immutable
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	run := &export.Run{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": export.RunStatusRunning},
		bson.M{"$set": set},
		opts,
	).Decode(run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errRunNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error finishing export run: %w", err)
	}

	return run, nil
}

func (r *repository) List(ctx context.Context, pagination store.Pagination) ([]*export.Run, error) {
	pagination = pagination.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "startedTime", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing export runs: %w", err)
	}

	runs := make([]*export.Run, 0)
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("error decoding export runs list: %w", err)
	}

	return runs, nil
}
