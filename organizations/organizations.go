package organizations

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
)

const CollectionName = "organizations"

var ErrNotFound = fmt.Errorf("organization %w", errors.NotFound)
var ErrDuplicateExternalId = fmt.Errorf("%w organization external id", errors.Duplicate)

//go:generate mockgen --build_flags=--mod=mod -source=./organizations.go -destination=./test/mock_service.go -package test

type Service interface {
	Get(ctx context.Context, id string) (*Organization, error)
	GetByExternalId(ctx context.Context, externalId string) (*Organization, error)
	Create(ctx context.Context, organization *Organization) (*Organization, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Get(ctx context.Context, id string) (*Organization, error)
	GetByExternalId(ctx context.Context, externalId string) (*Organization, error)
	Create(ctx context.Context, organization *Organization) (*Organization, error)
	Delete(ctx context.Context, id string) (*Organization, error)
}

type Organization struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	ExternalId  string              `bson:"externalId"`
	Name        string              `bson:"name"`
	CreatedTime time.Time           `bson:"createdTime,omitempty"`
	UpdatedTime time.Time           `bson:"updatedTime,omitempty"`
	DeletedTime *time.Time          `bson:"deletedTime,omitempty"`
}

func (o *Organization) IsDeleted() bool {
	return o.DeletedTime != nil
}
