package selfservice

import (
	"context"
	"fmt"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/results"
)

var ErrBirthDateMismatch = fmt.Errorf("%w: birth date does not match", errors.Unauthorized)

//go:generate mockgen --build_flags=--mod=mod -source=./selfservice.go -destination=./test/mock_service.go -package test

// Service is the patient facing side of the order queue. A patient proves
// their identity with the link issued at enqueue and their birth date.
type Service interface {
	VerifyLink(ctx context.Context, linkId string, birthDate string) (*Verification, error)
	SubmitSurvey(ctx context.Context, submission SurveySubmission) (*Verification, error)
}

type Verification struct {
	Person      *persons.Person    `json:"person"`
	OrderStatus orders.OrderStatus `json:"orderStatus"`
	LatestEvent *results.TestEvent `json:"latestEvent,omitempty"`
	Order       *orders.Order      `json:"-"`
}

type SurveySubmission struct {
	LinkId             string
	BirthDate          string
	Survey             orders.Survey
	DeliveryPreference *persons.DeliveryPreference
}
