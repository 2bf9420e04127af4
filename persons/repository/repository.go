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
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/store"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (persons.Repository, error) {
	deletionsRepo, err := deletions.NewRepository[persons.Person]("person", db, logger)
	if err != nil {
		return nil, err
	}

	repo := &repository{
		collection:    db.Collection(persons.CollectionName),
		deletionsRepo: deletionsRepo,
		logger:        logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := repo.Initialize(ctx); err != nil {
				return err
			}
			return repo.deletionsRepo.Initialize(ctx, []string{"_id", "organizationId"})
		},
	})

	return repo, nil
}

type repository struct {
	collection    *mongo.Collection
	deletionsRepo deletions.Repository[persons.Person]
	logger        *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "organizationId", Value: 1},
				{Key: "facilityId", Value: 1},
				{Key: "birthDate", Value: 1},
			},
			Options: options.Index().
				SetName("OrganizationFacilityBirthDate"),
		},
		{
			Keys: bson.D{
				{Key: "organizationId", Value: 1},
				{Key: "lookupId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"lookupId": bson.M{"$exists": true}}).
				SetName("UniqueOrganizationLookupId"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*persons.Person, error) {
	personId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, persons.ErrNotFound
	}

	person := &persons.Person{}
	err = r.collection.FindOne(ctx, bson.M{"_id": personId, "deletedTime": bson.M{"$exists": false}}).Decode(person)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, persons.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error fetching patient: %w", err)
	}

	return person, nil
}

func (r *repository) List(ctx context.Context, filter *persons.Filter, pagination store.Pagination) ([]*persons.Person, error) {
	pagination = pagination.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "name.last", Value: 1}, {Key: "name.first", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit))

	cursor, err := r.collection.Find(ctx, generateListFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}

	result := make([]*persons.Person, 0, pagination.Limit)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("error decoding patients list: %w", err)
	}
	return result, nil
}

func (r *repository) ListIds(ctx context.Context, filter *persons.Filter) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, generateListFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patient ids: %w", err)
	}

	var docs []struct {
		Id primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding patient ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Id)
	}
	return ids, nil
}

func (r *repository) Create(ctx context.Context, person *persons.Person) (*persons.Person, error) {
	now := store.Now()
	person.Id = nil
	person.CreatedTime = now
	person.UpdatedTime = now
	person.DeletedTime = nil

	res, err := r.collection.InsertOne(ctx, person)
	if store.IsDuplicateKeyError(err) {
		return nil, persons.ErrDuplicateLookupId
	} else if err != nil {
		return nil, fmt.Errorf("error creating patient: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	person.Id = &id
	return person, nil
}

func (r *repository) Update(ctx context.Context, id string, update persons.Update) (*persons.Person, error) {
	set := bson.M{"updatedTime": store.Now()}
	if update.Name != nil {
		set["name"] = update.Name
	}
	if update.BirthDate != nil {
		set["birthDate"] = update.BirthDate
	}
	if update.Address != nil {
		set["address"] = update.Address
	}
	if update.PhoneNumbers != nil {
		set["phoneNumbers"] = update.PhoneNumbers
	}
	if update.Emails != nil {
		set["emails"] = update.Emails
	}
	if update.Role != nil {
		set["role"] = update.Role
	}
	if update.Race != nil {
		set["race"] = update.Race
	}
	if update.Ethnicity != nil {
		set["ethnicity"] = update.Ethnicity
	}
	if update.GenderIdentity != nil {
		set["genderIdentity"] = update.GenderIdentity
	}
	if update.GenderAssignedAtBirth != nil {
		set["genderAssignedAtBirth"] = update.GenderAssignedAtBirth
	}
	if update.SexualOrientation != nil {
		set["sexualOrientation"] = update.SexualOrientation
	}
	if update.ResidentCongregateSetting != nil {
		set["residentCongregateSetting"] = update.ResidentCongregateSetting
	}
	if update.EmployedInHealthcare != nil {
		set["employedInHealthcare"] = update.EmployedInHealthcare
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *repository) UpdateDeliveryPreference(ctx context.Context, id string, preference persons.DeliveryPreference) (*persons.Person, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"testResultDelivery": preference,
			"updatedTime":        store.Now(),
		},
	})
}

func (r *repository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*persons.Person, error) {
	personId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, persons.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	person := &persons.Person{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": personId, "deletedTime": bson.M{"$exists": false}}, update, opts).Decode(person)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, persons.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error updating patient: %w", err)
	}

	return person, nil
}

// Delete soft deletes the patient and archives a copy. Ledger entries keep
// their own snapshot and are not touched.
func (r *repository) Delete(ctx context.Context, id string, deletedBy *string) error {
	now := store.Now()
	person, err := r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"deletedTime": now, "updatedTime": now}})
	if err != nil {
		return err
	}

	if err := r.deletionsRepo.Create(ctx, *person, deletions.Metadata{DeletedBy: deletedBy}); err != nil {
		r.logger.Errorw("unable to archive deleted patient", "patientId", id, "error", err)
	}
	return nil
}

func generateListFilterQuery(filter *persons.Filter) bson.M {
	selector := bson.M{
		"deletedTime": bson.M{"$exists": false},
	}
	if filter == nil {
		return selector
	}

	for k, v := range filter.Demographic.Selector() {
		selector[k] = v
	}
	if !filter.OrganizationId.IsZero() {
		selector["organizationId"] = filter.OrganizationId
	}
	if filter.VisibleAtFacilityId != nil {
		selector["$or"] = bson.A{
			bson.M{"facilityId": filter.VisibleAtFacilityId},
			bson.M{"facilityId": bson.M{"$exists": false}},
			bson.M{"facilityId": nil},
		}
	}
	if filter.Ids != nil {
		selector["_id"] = bson.M{"$in": filter.Ids}
	}
	return selector
}

var _ persons.Repository = &repository{}
