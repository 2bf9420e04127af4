package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mohae/deepcopy"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/labnet/testledger/config"
	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/outbox"
	"github.com/labnet/testledger/patientlinks"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/pointer"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/store"
)

const maxReasonForCorrectionLength = 1024

type service struct {
	config       *config.Config
	facilities   facilities.Service
	gate         scoping.Gate
	logger       *zap.SugaredLogger
	now          func() time.Time
	orders       orders.Service
	ordersRepo   orders.Repository
	outbox       outbox.Repository
	patientLinks patientlinks.Repository
	persons      persons.Repository
	repository   results.Repository
	transactor   store.Transactor
}

type Params struct {
	fx.In

	Config           *config.Config
	Facilities       facilities.Service
	Gate             scoping.Gate
	Logger           *zap.SugaredLogger
	Orders           orders.Service
	OrdersRepository orders.Repository
	Outbox           outbox.Repository
	PatientLinks     patientlinks.Repository
	Persons          persons.Repository
	Repository       results.Repository
	Transactor       store.Transactor
}

var _ results.Service = &service{}

func NewService(p Params) results.Service {
	return &service{
		config:       p.Config,
		facilities:   p.Facilities,
		gate:         p.Gate,
		logger:       p.Logger,
		now:          store.Now,
		orders:       p.Orders,
		ordersRepo:   p.OrdersRepository,
		outbox:       p.Outbox,
		patientLinks: p.PatientLinks,
		persons:      p.Persons,
		repository:   p.Repository,
		transactor:   p.Transactor,
	}
}

// SubmitResult completes the patient's pending order at the facility
func (s *service) SubmitResult(ctx context.Context, submission results.Submission) (*results.TestEvent, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, submission.FacilityId)
	if err != nil {
		return nil, err
	}
	if !submission.Result.IsValid() {
		return nil, fmt.Errorf("%w: %q is not a valid result", errs.BadRequest, submission.Result)
	}

	deviceType := submission.DeviceType
	if deviceType == "" {
		deviceType = pointer.Default(facility.DefaultDeviceType, "")
	}
	if !facility.HasDeviceType(deviceType) {
		return nil, facilities.ErrDeviceTypeNotAllowed
	}
	if submission.DateTested != nil && submission.DateTested.After(s.now()) {
		return nil, fmt.Errorf("%w: test date cannot be in the future", errs.BadRequest)
	}

	order, err := s.orders.GetPending(ctx, submission.PatientId)
	if err != nil {
		return nil, err
	}
	if order.FacilityId != *facility.Id {
		return nil, orders.CrossScopeError{PatientId: submission.PatientId, FacilityId: submission.FacilityId}
	}

	return s.RecordResult(ctx, order, results.Completion{
		DeviceType: deviceType,
		Result:     submission.Result,
		DateTested: submission.DateTested,
	})
}

// RecordResult materializes a pending order into a new test event and
// completes the order, atomically
func (s *service) RecordResult(ctx context.Context, order *orders.Order, completion results.Completion) (*results.TestEvent, error) {
	if !order.IsPending() {
		return nil, orders.NoActiveOrderError{PatientId: order.PatientId.Hex(), OrderId: order.Id.Hex()}
	}

	patient, err := s.persons.Get(ctx, order.PatientId.Hex())
	if err != nil {
		return nil, err
	}
	facility, err := s.facilities.Get(ctx, order.FacilityId.Hex())
	if err != nil {
		return nil, err
	}

	event := &results.TestEvent{
		OrganizationId:   order.OrganizationId,
		FacilityId:       order.FacilityId,
		PatientId:        order.PatientId,
		TestOrderId:      *order.Id,
		Patient:          deepcopy.Copy(*patient).(persons.Person),
		Facility:         deepcopy.Copy(*facility).(facilities.Facility),
		Survey:           deepcopy.Copy(order.Survey).(orders.Survey),
		DeviceType:       completion.DeviceType,
		Result:           completion.Result,
		DateTested:       completion.DateTested,
		CorrectionStatus: orders.CorrectionStatusOriginal,
	}

	result, err := s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		created, err := s.repository.Create(sessCtx, event)
		if err != nil {
			return nil, err
		}

		_, err = s.orders.Complete(sessCtx, order, orders.Completion{
			TestEventId: *created.Id,
			DeviceType:  completion.DeviceType,
			Result:      completion.Result,
			DateTested:  completion.DateTested,
		})
		if err != nil {
			return nil, err
		}

		if patient.TestResultDelivery.WantsDelivery() {
			if err := s.queueResultDelivery(sessCtx, created); err != nil {
				return nil, err
			}
		}
		return created, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(*results.TestEvent)
	s.logger.Infow("test result recorded",
		"testEventId", created.Id.Hex(),
		"orderId", order.Id.Hex(),
		"facilityId", order.FacilityId.Hex(),
		"sequence", created.Sequence,
	)
	return created, nil
}

// queueResultDelivery issues a fresh self-service link and asks the delivery
// dispatcher to notify the patient
func (s *service) queueResultDelivery(ctx context.Context, event *results.TestEvent) error {
	link := patientlinks.New(event.TestOrderId, event.OrganizationId, s.now(), s.config.PatientLinkTTL)
	if _, err := s.patientLinks.Create(ctx, link); err != nil {
		return err
	}

	payload := outbox.SendTestResultPayload{
		OrganizationId:     event.OrganizationId.Hex(),
		FacilityName:       event.Facility.Name,
		PatientId:          event.PatientId.Hex(),
		TestEventId:        event.Id.Hex(),
		PatientLinkId:      link.Id,
		DeliveryPreference: string(event.Patient.TestResultDelivery),
	}
	if event.Patient.TestResultDelivery != persons.DeliveryPreferenceEmail {
		payload.Phone = event.Patient.PrimaryPhone()
	}
	if event.Patient.TestResultDelivery != persons.DeliveryPreferenceSMS {
		payload.Email = event.Patient.PrimaryEmail()
	}

	outboxEvent, err := outbox.NewEvent(outbox.EventTypeSendTestResult, payload)
	if err != nil {
		return err
	}
	return s.outbox.Create(ctx, outboxEvent)
}

// Correct appends a new event superseding the target and moves the order's
// current event pointer to it. The target event is left untouched.
func (s *service) Correct(ctx context.Context, eventId string, reasonForCorrection string) (*results.TestEvent, error) {
	reasonForCorrection = strings.TrimSpace(reasonForCorrection)
	if len(reasonForCorrection) > maxReasonForCorrectionLength {
		return nil, fmt.Errorf("%w: reason for correction is too long", errs.BadRequest)
	}

	target, err := s.Get(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if target.CorrectionStatus == orders.CorrectionStatusRemoved {
		return nil, results.AlreadyRemovedError{TestEventId: eventId}
	}

	order, err := s.ordersRepo.Get(ctx, target.TestOrderId.Hex())
	if errors.Is(err, orders.ErrNotFound) {
		return nil, results.OrphanedOrderError{TestEventId: eventId, OrderId: target.TestOrderId.Hex()}
	} else if err != nil {
		return nil, err
	}
	if order.TestEventId == nil || *order.TestEventId != *target.Id {
		return nil, results.AlreadyRemovedError{TestEventId: eventId}
	}

	correction := deepcopy.Copy(*target).(results.TestEvent)
	correction.Id = nil
	correction.CorrectionStatus = orders.CorrectionStatusRemoved
	correction.ReasonForCorrection = &reasonForCorrection
	correction.PriorCorrectedTestEventId = target.Id

	result, err := s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		created, err := s.repository.Create(sessCtx, &correction)
		if err != nil {
			return nil, err
		}

		_, err = s.orders.MarkCorrected(sessCtx, order, orders.Correction{
			ExpectedTestEventId: *target.Id,
			TestEventId:         *created.Id,
			CorrectionStatus:    orders.CorrectionStatusRemoved,
			ReasonForCorrection: reasonForCorrection,
		})
		if errors.As(err, &orders.StaleCorrectionError{}) {
			return nil, results.AlreadyRemovedError{TestEventId: eventId}
		} else if err != nil {
			return nil, err
		}
		return created, nil
	})
	if err != nil {
		return nil, err
	}

	created := result.(*results.TestEvent)
	s.logger.Infow("test event corrected",
		"testEventId", created.Id.Hex(),
		"priorCorrectedTestEventId", eventId,
		"orderId", order.Id.Hex(),
	)
	return created, nil
}

// Get returns the event if it belongs to the caller's organization
func (s *service) Get(ctx context.Context, eventId string) (*results.TestEvent, error) {
	organization, err := s.gate.CurrentOrganization(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.repository.Get(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if event.OrganizationId != *organization.Id {
		return nil, results.ErrNotFound
	}
	return event, nil
}

func (s *service) LatestForPatient(ctx context.Context, patientId string) (*results.TestEvent, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, persons.ErrNotFound
	}

	accessible, err := s.gate.AccessibleFacilities(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.LatestForPatient(ctx, patientObjId, scoping.FacilityIds(accessible))
}

func (s *service) ListForFacility(ctx context.Context, facilityId string, pagination store.Pagination) ([]*results.TestEvent, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}
	return s.repository.ListForFacility(ctx, *facility.Id, pagination)
}

func (s *service) CountForFacility(ctx context.Context, facilityId string) (int64, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return 0, err
	}
	return s.repository.CountForFacility(ctx, *facility.Id)
}
