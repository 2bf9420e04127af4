package selfservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/patientlinks"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/store"
)

type Params struct {
	fx.In

	Logger       *zap.SugaredLogger
	Orders       orders.Service
	OrdersRepo   orders.Repository
	PatientLinks patientlinks.Repository
	Persons      persons.Service
	PersonsRepo  persons.Repository
	Results      results.Repository
}

type service struct {
	logger       *zap.SugaredLogger
	now          func() time.Time
	orders       orders.Service
	ordersRepo   orders.Repository
	patientLinks patientlinks.Repository
	persons      persons.Service
	personsRepo  persons.Repository
	results      results.Repository
}

var _ Service = &service{}

func NewService(p Params) Service {
	return &service{
		logger:       p.Logger,
		now:          store.Now,
		orders:       p.Orders,
		ordersRepo:   p.OrdersRepo,
		patientLinks: p.PatientLinks,
		persons:      p.Persons,
		personsRepo:  p.PersonsRepo,
		results:      p.Results,
	}
}

func (s *service) VerifyLink(ctx context.Context, linkId string, birthDate string) (*Verification, error) {
	link, err := s.patientLinks.Get(ctx, linkId)
	if err != nil {
		return nil, err
	}
	if link.IsExpired(s.now()) {
		return nil, patientlinks.ExpiredLinkError{LinkId: linkId}
	}

	order, err := s.ordersRepo.Get(ctx, link.OrderId.Hex())
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == orders.OrderStatusCanceled {
		return nil, patientlinks.ExpiredLinkError{LinkId: linkId}
	}

	person, err := s.personsRepo.Get(ctx, order.PatientId.Hex())
	if err != nil {
		return nil, err
	}
	if person.BirthDate != strings.TrimSpace(birthDate) {
		s.logger.Infow("patient link verification failed", "linkId", linkId, "orderId", order.Id.Hex())
		return nil, ErrBirthDateMismatch
	}

	verification := &Verification{
		Person:      person,
		OrderStatus: order.OrderStatus,
		Order:       order,
	}
	if order.TestEventId != nil {
		event, err := s.results.Get(ctx, order.TestEventId.Hex())
		if err != nil && !errors.Is(err, results.ErrNotFound) {
			return nil, err
		}
		verification.LatestEvent = event
	}

	return verification, nil
}

func (s *service) SubmitSurvey(ctx context.Context, submission SurveySubmission) (*Verification, error) {
	verification, err := s.VerifyLink(ctx, submission.LinkId, submission.BirthDate)
	if err != nil {
		return nil, err
	}
	if !verification.Order.IsPending() {
		return nil, orders.NoActiveOrderError{PatientId: verification.Order.PatientId.Hex(), OrderId: verification.Order.Id.Hex()}
	}

	// The patient acts within the organization that issued the link
	ctx = scoping.WithScope(ctx, scoping.Scope{OrganizationId: verification.Order.OrganizationId.Hex()})

	patientId := verification.Person.Id.Hex()
	order, err := s.orders.UpdateSurvey(ctx, patientId, submission.Survey)
	if err != nil {
		return nil, err
	}
	verification.Order = order
	verification.OrderStatus = order.OrderStatus

	if submission.DeliveryPreference != nil {
		person, err := s.persons.UpdateDeliveryPreference(ctx, patientId, *submission.DeliveryPreference)
		if err != nil {
			return nil, err
		}
		verification.Person = person
	}

	if err := s.patientLinks.Expire(ctx, submission.LinkId); err != nil {
		return nil, err
	}

	s.logger.Infow("patient submitted survey", "linkId", submission.LinkId, "orderId", order.Id.Hex())
	return verification, nil
}
