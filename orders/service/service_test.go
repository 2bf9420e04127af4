package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/labnet/testledger/config"
	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	facilitiesTest "github.com/labnet/testledger/facilities/test"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/orders/service"
	ordersTest "github.com/labnet/testledger/orders/test"
	"github.com/labnet/testledger/organizations"
	organizationsTest "github.com/labnet/testledger/organizations/test"
	"github.com/labnet/testledger/patientlinks"
	patientlinksTest "github.com/labnet/testledger/patientlinks/test"
	"github.com/labnet/testledger/persons"
	personsTest "github.com/labnet/testledger/persons/test"
	"github.com/labnet/testledger/scoping"
	scopingTest "github.com/labnet/testledger/scoping/test"
	dbTest "github.com/labnet/testledger/store/test"
	"github.com/labnet/testledger/test"
)

var _ = Describe("Orders service", func() {
	var ctrl *gomock.Controller
	var gate *scopingTest.MockGate
	var links *patientlinksTest.MockRepository
	var personsRepo *personsTest.MockRepository
	var repo *ordersTest.MockRepository
	var transactor *dbTest.PassthroughTransactor
	var svc orders.Service

	var organization *organizations.Organization
	var facility *facilities.Facility
	var patient *persons.Person

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		gate = scopingTest.NewMockGate(ctrl)
		links = patientlinksTest.NewMockRepository(ctrl)
		personsRepo = personsTest.NewMockRepository(ctrl)
		repo = ordersTest.NewMockRepository(ctrl)
		transactor = &dbTest.PassthroughTransactor{}

		cfg := config.New()
		cfg.PatientLinkTTL = 72 * time.Hour
		svc = service.NewService(service.Params{
			Config:       cfg,
			Gate:         gate,
			Logger:       zap.NewNop().Sugar(),
			PatientLinks: links,
			Persons:      personsRepo,
			Repository:   repo,
			Transactor:   transactor,
		})

		organization = organizationsTest.RandomOrganization()
		facility = facilitiesTest.RandomFacility(*organization.Id)
		patient = personsTest.RandomPerson(*organization.Id)
	})

	Describe("Enqueue", func() {
		var survey orders.Survey

		BeforeEach(func() {
			survey = ordersTest.RandomSurvey()
			gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(facility, nil)
		})

		It("creates a pending order and a patient link in a transaction", func() {
			personsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(patient, nil)
			repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(nil, orders.NoActiveOrderError{PatientId: patient.Id.Hex()})
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *orders.Order) (*orders.Order, error) {
				o.OrderStatus = orders.OrderStatusPending
				return o, nil
			})
			links.EXPECT().
				Create(gomock.Any(), test.Match(func(l *patientlinks.PatientLink) bool {
					return l.OrganizationId == *organization.Id && l.ExpiresAt.Sub(l.CreatedTime) == 72*time.Hour
				})).
				DoAndReturn(func(_ context.Context, l *patientlinks.PatientLink) (*patientlinks.PatientLink, error) {
					return l, nil
				})

			order, err := svc.Enqueue(context.Background(), facility.Id.Hex(), patient.Id.Hex(), survey)
			Expect(err).ToNot(HaveOccurred())
			Expect(order.PatientId).To(Equal(*patient.Id))
			Expect(order.FacilityId).To(Equal(*facility.Id))
			Expect(order.DeviceType).To(Equal(facility.DefaultDeviceType))
			Expect(order.Survey).To(Equal(survey))
			Expect(order.PatientLinkId).ToNot(BeNil())
			Expect(transactor.Calls).To(Equal(1))
		})

		It("rejects a second pending order for the patient", func() {
			existing := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)
			personsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(patient, nil)
			repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(existing, nil)

			_, err := svc.Enqueue(context.Background(), facility.Id.Hex(), patient.Id.Hex(), survey)
			Expect(err).To(MatchError(errs.Duplicate))
			Expect(transactor.Calls).To(BeZero())
		})

		It("rejects the order when a concurrent request created one first", func() {
			personsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(patient, nil)
			repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(nil, orders.NoActiveOrderError{PatientId: patient.Id.Hex()})
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, orders.DuplicateOrderError{PatientId: patient.Id.Hex()})

			_, err := svc.Enqueue(context.Background(), facility.Id.Hex(), patient.Id.Hex(), survey)
			Expect(err).To(MatchError(errs.Duplicate))
		})

		It("rejects patients of another organization", func() {
			other := personsTest.RandomPerson(primitive.NewObjectID())
			personsRepo.EXPECT().Get(gomock.Any(), other.Id.Hex()).Return(other, nil)

			_, err := svc.Enqueue(context.Background(), facility.Id.Hex(), other.Id.Hex(), survey)
			Expect(err).To(MatchError(errs.ConstraintViolation))
		})

		It("rejects patients bound to another facility", func() {
			otherFacilityId := primitive.NewObjectID()
			patient.FacilityId = &otherFacilityId
			personsRepo.EXPECT().Get(gomock.Any(), patient.Id.Hex()).Return(patient, nil)

			_, err := svc.Enqueue(context.Background(), facility.Id.Hex(), patient.Id.Hex(), survey)
			Expect(err).To(MatchError(orders.CrossScopeError{PatientId: patient.Id.Hex(), FacilityId: facility.Id.Hex()}))
		})
	})

	It("does not enqueue at inaccessible facilities", func() {
		gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(nil, scoping.AccessError{FacilityId: facility.Id.Hex()})

		_, err := svc.Enqueue(context.Background(), facility.Id.Hex(), patient.Id.Hex(), orders.Survey{})
		Expect(err).To(MatchError(errs.Forbidden))
	})

	Describe("Cancel", func() {
		It("cancels the pending order", func() {
			pending := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)
			canceled := *pending
			canceled.OrderStatus = orders.OrderStatusCanceled

			gate.EXPECT().CurrentOrganization(gomock.Any()).Return(organization, nil)
			repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(pending, nil)
			repo.EXPECT().Cancel(gomock.Any(), *pending.Id).Return(&canceled, nil)

			order, err := svc.Cancel(context.Background(), patient.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(order.OrderStatus).To(Equal(orders.OrderStatusCanceled))
		})

		It("returns not found without a pending order", func() {
			gate.EXPECT().CurrentOrganization(gomock.Any()).Return(organization, nil)
			repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(nil, orders.NoActiveOrderError{PatientId: patient.Id.Hex()})

			_, err := svc.Cancel(context.Background(), patient.Id.Hex())
			Expect(err).To(MatchError(errs.NotFound))
		})

		It("returns not found for malformed patient ids", func() {
			gate.EXPECT().CurrentOrganization(gomock.Any()).Return(organization, nil)

			_, err := svc.Cancel(context.Background(), "invalid")
			Expect(err).To(MatchError(persons.ErrNotFound))
		})
	})

	It("updates the survey of the pending order", func() {
		pending := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)
		survey := ordersTest.RandomSurvey()

		gate.EXPECT().CurrentOrganization(gomock.Any()).Return(organization, nil)
		repo.EXPECT().GetPending(gomock.Any(), *organization.Id, *patient.Id).Return(pending, nil)
		repo.EXPECT().UpdateSurvey(gomock.Any(), *pending.Id, survey).Return(pending, nil)

		_, err := svc.UpdateSurvey(context.Background(), patient.Id.Hex(), survey)
		Expect(err).ToNot(HaveOccurred())
	})

	It("lists the pending orders of the facility", func() {
		pending := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)

		gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(facility, nil)
		repo.EXPECT().
			List(gomock.Any(), test.Match(func(f orders.Filter) bool {
				return *f.FacilityId == *facility.Id && *f.OrganizationId == *organization.Id && *f.OrderStatus == orders.OrderStatusPending
			}), gomock.Any()).
			Return([]*orders.Order{pending}, nil)

		queue, err := svc.Queue(context.Background(), facility.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(queue).To(ConsistOf(pending))
	})

	Describe("Complete", func() {
		It("completes pending orders", func() {
			pending := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)
			completion := orders.Completion{TestEventId: primitive.NewObjectID(), DeviceType: facility.DeviceTypes[0], Result: orders.ResultNegative}
			repo.EXPECT().Complete(gomock.Any(), *pending.Id, completion).Return(pending, nil)

			_, err := svc.Complete(context.Background(), pending, completion)
			Expect(err).ToNot(HaveOccurred())
		})

		It("rejects orders that are not pending", func() {
			order := ordersTest.RandomPendingOrder(*organization.Id, *facility.Id, *patient.Id)
			order.OrderStatus = orders.OrderStatusCanceled

			_, err := svc.Complete(context.Background(), order, orders.Completion{})
			Expect(err).To(MatchError(errs.NotFound))
		})
	})

	Describe("CancelAll", func() {
		It("returns the number of canceled orders", func() {
			repo.EXPECT().CancelAllPending(gomock.Any(), *organization.Id).Return(int64(3), nil)

			count, err := svc.CancelAll(context.Background(), organization.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeEquivalentTo(3))
		})

		It("returns not found for malformed organization ids", func() {
			_, err := svc.CancelAll(context.Background(), "invalid")
			Expect(err).To(MatchError(organizations.ErrNotFound))
		})
	})
})
