package patientlinks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
)

const CollectionName = "patient_links"

var ErrNotFound = fmt.Errorf("patient link %w", errors.NotFound)

// ExpiredLinkError is returned when a self-service link is past its expiry or
// was already consumed
type ExpiredLinkError struct {
	LinkId string
}

func (e ExpiredLinkError) Error() string {
	return fmt.Sprintf("patient link %s is expired", e.LinkId)
}

func (e ExpiredLinkError) Unwrap() error {
	return errors.Gone
}

//go:generate mockgen --build_flags=--mod=mod -source=./patientlinks.go -destination=./test/mock_repository.go -package test

type Repository interface {
	Create(ctx context.Context, link *PatientLink) (*PatientLink, error)
	Get(ctx context.Context, id string) (*PatientLink, error)
	Expire(ctx context.Context, id string) error
}

type PatientLink struct {
	Id             string             `bson:"_id" json:"id"`
	OrderId        primitive.ObjectID `bson:"orderId" json:"orderId"`
	OrganizationId primitive.ObjectID `bson:"organizationId" json:"organizationId"`
	CreatedTime    time.Time          `bson:"createdTime" json:"createdTime"`
	ExpiresAt      time.Time          `bson:"expiresAt" json:"expiresAt"`
}

// New returns a link bound to the order which expires after ttl
func New(orderId, organizationId primitive.ObjectID, now time.Time, ttl time.Duration) *PatientLink {
	return &PatientLink{
		Id:             uuid.NewString(),
		OrderId:        orderId,
		OrganizationId: organizationId,
		CreatedTime:    now,
		ExpiresAt:      now.Add(ttl),
	}
}

func (l *PatientLink) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
