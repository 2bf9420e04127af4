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
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (orders.Repository, error) {
	repo := &repository{
		collection: db.Collection(orders.CollectionName),
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
				{Key: "patientId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"orderStatus": orders.OrderStatusPending}).
				SetName("UniquePendingOrderPerPatient"),
		},
		{
			Keys: bson.D{
				{Key: "facilityId", Value: 1},
				{Key: "orderStatus", Value: 1},
				{Key: "createdTime", Value: 1},
			},
			Options: options.Index().
				SetName("FacilityQueue"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*orders.Order, error) {
	orderId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, orders.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": orderId})
}

func (r *repository) GetPending(ctx context.Context, organizationId primitive.ObjectID, patientId primitive.ObjectID) (*orders.Order, error) {
	order, err := r.findOne(ctx, bson.M{
		"organizationId": organizationId,
		"patientId":      patientId,
		"orderStatus":    orders.OrderStatusPending,
	})
	if errors.Is(err, orders.ErrNotFound) {
		return nil, orders.NoActiveOrderError{PatientId: patientId.Hex()}
	}
	return order, err
}

func (r *repository) findOne(ctx context.Context, selector bson.M) (*orders.Order, error) {
	order := &orders.Order{}
	err := r.collection.FindOne(ctx, selector).Decode(order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, orders.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching order: %w", err)
	}
	return order, nil
}

func (r *repository) List(ctx context.Context, filter orders.Filter, pagination store.Pagination) ([]*orders.Order, error) {
	pagination = pagination.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "createdTime", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit))

	selector := bson.M{}
	if filter.OrganizationId != nil {
		selector["organizationId"] = filter.OrganizationId
	}
	if filter.FacilityId != nil {
		selector["facilityId"] = filter.FacilityId
	}
	if filter.PatientId != nil {
		selector["patientId"] = filter.PatientId
	}
	if filter.OrderStatus != nil {
		selector["orderStatus"] = filter.OrderStatus
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	result := make([]*orders.Order, 0, pagination.Limit)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding orders: %w", err)
	}
	return result, nil
}

// Create inserts a pending order. The partial unique index rejects a second
// pending order for the same patient even when two requests race.
func (r *repository) Create(ctx context.Context, order *orders.Order) (*orders.Order, error) {
	now := store.Now()
	if order.Id == nil {
		id := primitive.NewObjectID()
		order.Id = &id
	}
	order.OrderStatus = orders.OrderStatusPending
	order.CorrectionStatus = orders.CorrectionStatusOriginal
	order.CreatedTime = now
	order.UpdatedTime = now

	if _, err := r.collection.InsertOne(ctx, order); store.IsDuplicateKeyError(err) {
		return nil, orders.DuplicateOrderError{PatientId: order.PatientId.Hex()}
	} else if err != nil {
		return nil, fmt.Errorf("error creating order: %w", err)
	}
	return order, nil
}

func (r *repository) UpdateSurvey(ctx context.Context, id primitive.ObjectID, survey orders.Survey) (*orders.Order, error) {
	return r.transition(ctx,
		bson.M{"_id": id, "orderStatus": orders.OrderStatusPending},
		bson.M{"$set": bson.M{"survey": survey, "updatedTime": store.Now()}},
		id,
	)
}

func (r *repository) Cancel(ctx context.Context, id primitive.ObjectID) (*orders.Order, error) {
	return r.transition(ctx,
		bson.M{"_id": id, "orderStatus": orders.OrderStatusPending},
		bson.M{"$set": bson.M{"orderStatus": orders.OrderStatusCanceled, "updatedTime": store.Now()}},
		id,
	)
}

// Complete transitions a pending order to completed. Only one caller can
// observe the pending status so the transition happens at most once.
func (r *repository) Complete(ctx context.Context, id primitive.ObjectID, completion orders.Completion) (*orders.Order, error) {
	set := bson.M{
		"orderStatus": orders.OrderStatusCompleted,
		"testEventId": completion.TestEventId,
		"deviceType":  completion.DeviceType,
		"result":      completion.Result,
		"updatedTime": store.Now(),
	}
	if completion.DateTested != nil {
		set["dateTested"] = completion.DateTested
	}

	return r.transition(ctx,
		bson.M{"_id": id, "orderStatus": orders.OrderStatusPending},
		bson.M{"$set": set},
		id,
	)
}

// MarkCorrected moves the current event pointer only if it still references
// the expected event
func (r *repository) MarkCorrected(ctx context.Context, id primitive.ObjectID, correction orders.Correction) (*orders.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	order := &orders.Order{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "testEventId": correction.ExpectedTestEventId},
		bson.M{"$set": bson.M{
			"testEventId":         correction.TestEventId,
			"correctionStatus":    correction.CorrectionStatus,
			"reasonForCorrection": correction.ReasonForCorrection,
			"updatedTime":         store.Now(),
		}},
		opts,
	).Decode(order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, orders.StaleCorrectionError{OrderId: id.Hex(), TestEventId: correction.ExpectedTestEventId.Hex()}
	} else if err != nil {
		return nil, fmt.Errorf("error correcting order: %w", err)
	}
	return order, nil
}

func (r *repository) CancelAllPending(ctx context.Context, organizationId primitive.ObjectID) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"organizationId": organizationId, "orderStatus": orders.OrderStatusPending},
		bson.M{"$set": bson.M{"orderStatus": orders.OrderStatusCanceled, "updatedTime": store.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("error canceling pending orders: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *repository) transition(ctx context.Context, selector bson.M, update bson.M, id primitive.ObjectID) (*orders.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	order := &orders.Order{}
	err := r.collection.FindOneAndUpdate(ctx, selector, update, opts).Decode(order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		existing, getErr := r.Get(ctx, id.Hex())
		if getErr != nil {
			return nil, getErr
		}
		return nil, orders.NoActiveOrderError{PatientId: existing.PatientId.Hex(), OrderId: id.Hex()}
	} else if err != nil {
		return nil, fmt.Errorf("error updating order: %w", err)
	}
	return order, nil
}

var _ orders.Repository = &repository{}
