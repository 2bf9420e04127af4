package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/labnet/testledger/addresses"
	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/persons/service"
	personsTest "github.com/labnet/testledger/persons/test"
	"github.com/labnet/testledger/store"
	"github.com/labnet/testledger/test"
)

var _ = Describe("Persons service", func() {
	var ctrl *gomock.Controller
	var repo *personsTest.MockRepository
	var svc persons.Service
	var person *persons.Person

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = personsTest.NewMockRepository(ctrl)
		svc = service.NewService(repo, addresses.NewPassthroughValidator(), zap.NewNop().Sugar())
		person = personsTest.RandomPerson(primitive.NewObjectID())
	})

	Describe("Create", func() {
		It("persists the normalized patient", func() {
			person.Race = "ASIAN"
			repo.EXPECT().
				Create(gomock.Any(), test.Match(func(p *persons.Person) bool { return p.Race == "asian" })).
				DoAndReturn(func(_ context.Context, p *persons.Person) (*persons.Person, error) {
					return p, nil
				})

			created, err := svc.Create(context.Background(), person)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Race).To(Equal("asian"))
		})

		It("requires an organization", func() {
			person.OrganizationId = primitive.NilObjectID
			_, err := svc.Create(context.Background(), person)
			Expect(err).To(MatchError(errs.BadRequest))
		})

		It("does not persist invalid patients", func() {
			person.BirthDate = "yesterday"
			_, err := svc.Create(context.Background(), person)
			Expect(err).To(MatchError(errs.BadRequest))
		})
	})

	Describe("Update", func() {
		It("persists only the updated fields with normalized values", func() {
			race := "PACIFIC"
			repo.EXPECT().Get(gomock.Any(), person.Id.Hex()).Return(person, nil)
			repo.EXPECT().
				Update(gomock.Any(), person.Id.Hex(), test.Match(func(u persons.Update) bool {
					return u.Race != nil && *u.Race == "pacific" && u.Name == nil && u.Ethnicity == nil
				})).
				Return(person, nil)

			_, err := svc.Update(context.Background(), person.Id.Hex(), persons.Update{Race: &race})
			Expect(err).ToNot(HaveOccurred())
		})

		It("does not modify the current record when validation fails", func() {
			original := person.BirthDate
			birthDate := "not a date"
			repo.EXPECT().Get(gomock.Any(), person.Id.Hex()).Return(person, nil)

			_, err := svc.Update(context.Background(), person.Id.Hex(), persons.Update{BirthDate: &birthDate})
			Expect(err).To(MatchError(errs.BadRequest))
			Expect(person.BirthDate).To(Equal(original))
		})

		It("returns not found for unknown patients", func() {
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, persons.ErrNotFound)
			_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), persons.Update{})
			Expect(err).To(MatchError(errs.NotFound))
		})
	})

	Describe("UpdateDeliveryPreference", func() {
		It("rejects unknown preferences", func() {
			_, err := svc.UpdateDeliveryPreference(context.Background(), person.Id.Hex(), "PIGEON")
			Expect(err).To(MatchError(errs.BadRequest))
		})

		It("persists valid preferences", func() {
			repo.EXPECT().UpdateDeliveryPreference(gomock.Any(), person.Id.Hex(), persons.DeliveryPreferenceEmail).Return(person, nil)
			_, err := svc.UpdateDeliveryPreference(context.Background(), person.Id.Hex(), persons.DeliveryPreferenceEmail)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("validates the demographic filter", func() {
			after := "2000-01-01"
			before := "1990-01-01"
			filter := &persons.Filter{Demographic: &persons.Demographic{BornOnOrAfter: &after, BornOnOrBefore: &before}}
			_, err := svc.List(context.Background(), filter, store.DefaultPagination())
			Expect(err).To(MatchError(errs.BadRequest))
		})
	})
})
