package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/config"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/organizations"
	"github.com/labnet/testledger/patientlinks"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/store"
)

type service struct {
	config       *config.Config
	gate         scoping.Gate
	logger       *zap.SugaredLogger
	now          func() time.Time
	patientLinks patientlinks.Repository
	persons      persons.Repository
	repository   orders.Repository
	transactor   store.Transactor
}

type Params struct {
	fx.In

	Config       *config.Config
	Gate         scoping.Gate
	Logger       *zap.SugaredLogger
	PatientLinks patientlinks.Repository
	Persons      persons.Repository
	Repository   orders.Repository
	Transactor   store.Transactor
}

var _ orders.Service = &service{}

func NewService(p Params) orders.Service {
	return &service{
		config:       p.Config,
		gate:         p.Gate,
		logger:       p.Logger,
		now:          store.Now,
		patientLinks: p.PatientLinks,
		persons:      p.Persons,
		repository:   p.Repository,
		transactor:   p.Transactor,
	}
}

func (s *service) Enqueue(ctx context.Context, facilityId string, patientId string, survey orders.Survey) (*orders.Order, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}
	patient, err := s.persons.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}
	if patient.OrganizationId != facility.OrganizationId || !patient.IsVisibleAt(*facility.Id) {
		return nil, orders.CrossScopeError{PatientId: patientId, FacilityId: facilityId}
	}

	existing, err := s.repository.GetPending(ctx, patient.OrganizationId, *patient.Id)
	if err == nil {
		return nil, orders.DuplicateOrderError{PatientId: patientId, OrderId: existing.Id.Hex()}
	} else if !errors.As(err, &orders.NoActiveOrderError{}) {
		return nil, err
	}

	orderId := primitive.NewObjectID()
	link := patientlinks.New(orderId, facility.OrganizationId, s.now(), s.config.PatientLinkTTL)
	order := &orders.Order{
		Id:             &orderId,
		OrganizationId: facility.OrganizationId,
		FacilityId:     *facility.Id,
		PatientId:      *patient.Id,
		Survey:         survey,
		DeviceType:     facility.DefaultDeviceType,
		PatientLinkId:  &link.Id,
	}

	// Insertion will fail if there are two concurrent requests for the same patient
	result, err := s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		created, err := s.repository.Create(sessCtx, order)
		if err != nil {
			return nil, err
		}
		if _, err := s.patientLinks.Create(sessCtx, link); err != nil {
			return nil, err
		}
		return created, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(*orders.Order)
	s.logger.Infow("patient added to queue",
		"orderId", created.Id.Hex(),
		"patientId", patientId,
		"facilityId", facilityId,
		"organizationId", created.OrganizationId.Hex(),
	)
	return created, nil
}

func (s *service) Cancel(ctx context.Context, patientId string) (*orders.Order, error) {
	pending, err := s.GetPending(ctx, patientId)
	if err != nil {
		return nil, err
	}

	canceled, err := s.repository.Cancel(ctx, *pending.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("patient removed from queue", "orderId", canceled.Id.Hex(), "patientId", patientId)
	return canceled, nil
}

func (s *service) UpdateSurvey(ctx context.Context, patientId string, survey orders.Survey) (*orders.Order, error) {
	pending, err := s.GetPending(ctx, patientId)
	if err != nil {
		return nil, err
	}

	return s.repository.UpdateSurvey(ctx, *pending.Id, survey)
}

func (s *service) GetPending(ctx context.Context, patientId string) (*orders.Order, error) {
	organization, err := s.gate.CurrentOrganization(ctx)
	if err != nil {
		return nil, err
	}
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, persons.ErrNotFound
	}

	return s.repository.GetPending(ctx, *organization.Id, patientObjId)
}

func (s *service) Queue(ctx context.Context, facilityId string) ([]*orders.Order, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}

	status := orders.OrderStatusPending
	filter := orders.Filter{
		OrganizationId: &facility.OrganizationId,
		FacilityId:     facility.Id,
		OrderStatus:    &status,
	}
	return s.repository.List(ctx, filter, store.DefaultPagination().WithLimit(store.MaximumLimit))
}

// Complete is called by the result ledger inside its transaction
func (s *service) Complete(ctx context.Context, order *orders.Order, completion orders.Completion) (*orders.Order, error) {
	if !order.IsPending() {
		return nil, orders.NoActiveOrderError{PatientId: order.PatientId.Hex(), OrderId: order.Id.Hex()}
	}

	completed, err := s.repository.Complete(ctx, *order.Id, completion)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order completed", "orderId", completed.Id.Hex(), "testEventId", completion.TestEventId.Hex())
	return completed, nil
}

func (s *service) MarkCorrected(ctx context.Context, order *orders.Order, correction orders.Correction) (*orders.Order, error) {
	corrected, err := s.repository.MarkCorrected(ctx, *order.Id, correction)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("order corrected",
		"orderId", corrected.Id.Hex(),
		"testEventId", correction.TestEventId.Hex(),
		"correctionStatus", correction.CorrectionStatus,
	)
	return corrected, nil
}

func (s *service) CancelAll(ctx context.Context, organizationId string) (int64, error) {
	orgId, err := primitive.ObjectIDFromHex(organizationId)
	if err != nil {
		return 0, organizations.ErrNotFound
	}

	count, err := s.repository.CancelAllPending(ctx, orgId)
	if err != nil {
		return 0, err
	}

	s.logger.Infow("canceled all pending orders", "organizationId", organizationId, "count", count)
	return count, nil
}
