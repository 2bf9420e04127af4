package results

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/store"
)

const (
	CollectionName = "test_events"
	SequenceName   = "test_events"
)

var ErrNotFound = fmt.Errorf("test event %w", errors.NotFound)

//go:generate mockgen --build_flags=--mod=mod -source=./results.go -destination=./test/mock_results.go -package test

// Service is the result ledger
type Service interface {
	SubmitResult(ctx context.Context, submission Submission) (*TestEvent, error)
	RecordResult(ctx context.Context, order *orders.Order, completion Completion) (*TestEvent, error)
	Correct(ctx context.Context, eventId string, reasonForCorrection string) (*TestEvent, error)
	Get(ctx context.Context, eventId string) (*TestEvent, error)
	LatestForPatient(ctx context.Context, patientId string) (*TestEvent, error)
	ListForFacility(ctx context.Context, facilityId string, pagination store.Pagination) ([]*TestEvent, error)
	CountForFacility(ctx context.Context, facilityId string) (int64, error)
}

// Repository is append-only. Test events are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, event *TestEvent) (*TestEvent, error)
	Get(ctx context.Context, id string) (*TestEvent, error)
	LatestForPatient(ctx context.Context, patientId primitive.ObjectID, facilityIds []primitive.ObjectID) (*TestEvent, error)
	ListForFacility(ctx context.Context, facilityId primitive.ObjectID, pagination store.Pagination) ([]*TestEvent, error)
	CountForFacility(ctx context.Context, facilityId primitive.ObjectID) (int64, error)
	CountResults(ctx context.Context, filter CountFilter) (*ResultCounts, error)
	DistinctPatientIds(ctx context.Context, facilityId primitive.ObjectID) ([]primitive.ObjectID, error)
	ListWindow(ctx context.Context, window Window) ([]*TestEvent, error)
}

// TestEvent is an immutable test record. Patient, facility and survey are
// owned copies taken when the event was created.
type TestEvent struct {
	Id                        *primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Sequence                  int64                   `bson:"sequence" json:"sequence"`
	OrganizationId            primitive.ObjectID      `bson:"organizationId" json:"organizationId"`
	FacilityId                primitive.ObjectID      `bson:"facilityId" json:"facilityId"`
	PatientId                 primitive.ObjectID      `bson:"patientId" json:"patientId"`
	TestOrderId               primitive.ObjectID      `bson:"testOrderId" json:"testOrderId"`
	Patient                   persons.Person          `bson:"patient" json:"patient"`
	Facility                  facilities.Facility     `bson:"facility" json:"facility"`
	Survey                    orders.Survey           `bson:"survey" json:"survey"`
	DeviceType                string                  `bson:"deviceType" json:"deviceType"`
	Result                    orders.Result           `bson:"result" json:"result"`
	DateTested                *time.Time              `bson:"dateTested,omitempty" json:"dateTested,omitempty"`
	CorrectionStatus          orders.CorrectionStatus `bson:"correctionStatus" json:"correctionStatus"`
	ReasonForCorrection       *string                 `bson:"reasonForCorrection,omitempty" json:"reasonForCorrection,omitempty"`
	PriorCorrectedTestEventId *primitive.ObjectID     `bson:"priorCorrectedTestEventId,omitempty" json:"priorCorrectedTestEventId,omitempty"`
	CreatedTime               time.Time               `bson:"createdTime" json:"createdTime"`
}

// EffectiveTestDate is the backdated test date if present, otherwise the creation time
func (e *TestEvent) EffectiveTestDate() time.Time {
	if e.DateTested != nil {
		return *e.DateTested
	}
	return e.CreatedTime
}

// Submission is a staff result entry for the patient's pending order
type Submission struct {
	FacilityId string
	PatientId  string
	DeviceType string
	Result     orders.Result
	DateTested *time.Time
}

type Completion struct {
	DeviceType string
	Result     orders.Result
	DateTested *time.Time
}

type CountFilter struct {
	FacilityId primitive.ObjectID
	PatientIds []primitive.ObjectID
	// Since is an inclusive lower bound on creation time. Nil means unbounded.
	Since *time.Time
}

type ResultCounts struct {
	Total    int64 `bson:"total"`
	Positive int64 `bson:"positive"`
}

// Window selects events created in (After, Until], in creation order. Events
// created exactly at After are included when their sequence is greater than
// AfterSequence.
type Window struct {
	After         time.Time
	AfterSequence int64
	Until         time.Time
	Limit         int
}
