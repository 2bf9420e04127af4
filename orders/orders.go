package orders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/store"
)

const CollectionName = "orders"

var (
	ErrNotFound = fmt.Errorf("order %w", errors.NotFound)
)

//go:generate mockgen --build_flags=--mod=mod -source=./orders.go -destination=./test/mock_orders.go -package test

// Service is the order queue. Every method is called with a context bound to
// the caller's organization.
type Service interface {
	Enqueue(ctx context.Context, facilityId string, patientId string, survey Survey) (*Order, error)
	Cancel(ctx context.Context, patientId string) (*Order, error)
	UpdateSurvey(ctx context.Context, patientId string, survey Survey) (*Order, error)
	GetPending(ctx context.Context, patientId string) (*Order, error)
	Queue(ctx context.Context, facilityId string) ([]*Order, error)
	Complete(ctx context.Context, order *Order, completion Completion) (*Order, error)
	MarkCorrected(ctx context.Context, order *Order, correction Correction) (*Order, error)
	CancelAll(ctx context.Context, organizationId string) (int64, error)
}

type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	GetPending(ctx context.Context, organizationId primitive.ObjectID, patientId primitive.ObjectID) (*Order, error)
	List(ctx context.Context, filter Filter, pagination store.Pagination) ([]*Order, error)
	Create(ctx context.Context, order *Order) (*Order, error)
	UpdateSurvey(ctx context.Context, id primitive.ObjectID, survey Survey) (*Order, error)
	Cancel(ctx context.Context, id primitive.ObjectID) (*Order, error)
	Complete(ctx context.Context, id primitive.ObjectID, completion Completion) (*Order, error)
	MarkCorrected(ctx context.Context, id primitive.ObjectID, correction Correction) (*Order, error)
	CancelAllPending(ctx context.Context, organizationId primitive.ObjectID) (int64, error)
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

type CorrectionStatus string

const (
	CorrectionStatusOriginal  CorrectionStatus = "ORIGINAL"
	CorrectionStatusCorrected CorrectionStatus = "CORRECTED"
	CorrectionStatusRemoved   CorrectionStatus = "REMOVED"
)

type Result string

const (
	ResultPositive     Result = "POSITIVE"
	ResultNegative     Result = "NEGATIVE"
	ResultUndetermined Result = "UNDETERMINED"
)

func (r Result) IsValid() bool {
	switch r {
	case ResultPositive, ResultNegative, ResultUndetermined:
		return true
	}
	return false
}

// Survey holds the intake answers collected before testing
type Survey struct {
	Pregnancy        *string         `bson:"pregnancy,omitempty" json:"pregnancy,omitempty"`
	Symptoms         map[string]bool `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	NoSymptoms       *bool           `bson:"noSymptoms,omitempty" json:"noSymptoms,omitempty"`
	SymptomOnsetDate *string         `bson:"symptomOnsetDate,omitempty" json:"symptomOnsetDate,omitempty"`
	FirstTest        *bool           `bson:"firstTest,omitempty" json:"firstTest,omitempty"`
	PriorTestDate    *string         `bson:"priorTestDate,omitempty" json:"priorTestDate,omitempty"`
	PriorTestType    *string         `bson:"priorTestType,omitempty" json:"priorTestType,omitempty"`
	PriorTestResult  *Result         `bson:"priorTestResult,omitempty" json:"priorTestResult,omitempty"`
}

func (s Survey) HasSymptoms() bool {
	for _, present := range s.Symptoms {
		if present {
			return true
		}
	}
	return false
}

type Order struct {
	Id                  *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrganizationId      primitive.ObjectID  `bson:"organizationId" json:"organizationId"`
	FacilityId          primitive.ObjectID  `bson:"facilityId" json:"facilityId"`
	PatientId           primitive.ObjectID  `bson:"patientId" json:"patientId"`
	Survey              Survey              `bson:"survey" json:"survey"`
	DeviceType          *string             `bson:"deviceType,omitempty" json:"deviceType,omitempty"`
	Result              *Result             `bson:"result,omitempty" json:"result,omitempty"`
	DateTested          *time.Time          `bson:"dateTested,omitempty" json:"dateTested,omitempty"`
	OrderStatus         OrderStatus         `bson:"orderStatus" json:"orderStatus"`
	CorrectionStatus    CorrectionStatus    `bson:"correctionStatus" json:"correctionStatus"`
	ReasonForCorrection *string             `bson:"reasonForCorrection,omitempty" json:"reasonForCorrection,omitempty"`
	TestEventId         *primitive.ObjectID `bson:"testEventId,omitempty" json:"testEventId,omitempty"`
	PatientLinkId       *string             `bson:"patientLinkId,omitempty" json:"patientLinkId,omitempty"`
	CreatedTime         time.Time           `bson:"createdTime,omitempty" json:"createdTime"`
	UpdatedTime         time.Time           `bson:"updatedTime,omitempty" json:"updatedTime"`
}

func (o *Order) IsPending() bool {
	return o.OrderStatus == OrderStatusPending
}

// Completion is applied when a pending order receives its result
type Completion struct {
	TestEventId primitive.ObjectID
	DeviceType  string
	Result      Result
	DateTested  *time.Time
}

// Correction moves the order's current event pointer from ExpectedTestEventId
// to TestEventId. It is rejected if the order no longer points at ExpectedTestEventId.
type Correction struct {
	ExpectedTestEventId primitive.ObjectID
	TestEventId         primitive.ObjectID
	CorrectionStatus    CorrectionStatus
	ReasonForCorrection string
}

type Filter struct {
	OrganizationId *primitive.ObjectID
	FacilityId     *primitive.ObjectID
	PatientId      *primitive.ObjectID
	OrderStatus    *OrderStatus
}
