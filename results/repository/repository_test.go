package repository_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/results/repository"
	resultsTest "github.com/labnet/testledger/results/test"
	"github.com/labnet/testledger/store"
	dbTest "github.com/labnet/testledger/store/test"
)

var _ = Describe("Results repository", func() {
	var repo results.Repository
	var lifecycle *fxtest.Lifecycle

	BeforeEach(func() {
		database := dbTest.GetTestDatabase()
		_, err := database.Collection(results.CollectionName).DeleteMany(context.Background(), bson.M{})
		Expect(err).ToNot(HaveOccurred())

		lifecycle = fxtest.NewLifecycle(GinkgoT())
		repo, err = repository.NewRepository(database, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		lifecycle.RequireStop()
	})

	create := func(event *results.TestEvent) *results.TestEvent {
		created, err := repo.Create(context.Background(), event)
		Expect(err).ToNot(HaveOccurred())
		return created
	}

	// sameFacility returns a fresh event for the facility and organization of the given event
	sameFacility := func(event *results.TestEvent) *results.TestEvent {
		other := resultsTest.RandomTestEvent()
		other.OrganizationId = event.OrganizationId
		other.FacilityId = event.FacilityId
		other.Facility = event.Facility
		return other
	}

	correctionOf := func(event *results.TestEvent) *results.TestEvent {
		correction := *event
		correction.Id = nil
		correction.CorrectionStatus = orders.CorrectionStatusRemoved
		reason := resultsTest.RandomReason()
		correction.ReasonForCorrection = &reason
		correction.PriorCorrectedTestEventId = event.Id
		return &correction
	}

	It("assigns strictly increasing sequences", func() {
		first := create(resultsTest.RandomTestEvent())
		second := create(resultsTest.RandomTestEvent())
		Expect(first.Id).ToNot(BeNil())
		Expect(second.Sequence).To(BeNumerically(">", first.Sequence))

		fetched, err := repo.Get(context.Background(), second.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(fetched.Sequence).To(Equal(second.Sequence))
		Expect(fetched.Patient.Name).To(Equal(second.Patient.Name))
	})

	It("returns not found for unknown events", func() {
		_, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())
		Expect(err).To(MatchError(results.ErrNotFound))
	})

	Describe("ListForFacility", func() {
		It("returns the latest event of every order, newest first", func() {
			original := create(resultsTest.RandomTestEvent())
			other := create(sameFacility(original))
			correction := create(correctionOf(original))
			create(resultsTest.RandomTestEvent())

			events, err := repo.ListForFacility(context.Background(), original.FacilityId, store.DefaultPagination())
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(2))
			Expect(events[0].Id).To(Equal(correction.Id))
			Expect(events[0].PriorCorrectedTestEventId).To(Equal(original.Id))
			Expect(events[1].Id).To(Equal(other.Id))

			count, err := repo.CountForFacility(context.Background(), original.FacilityId)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeEquivalentTo(2))
		})

		It("paginates", func() {
			first := create(resultsTest.RandomTestEvent())
			for i := 0; i < 4; i++ {
				create(sameFacility(first))
			}

			page, err := repo.ListForFacility(context.Background(), first.FacilityId, store.DefaultPagination().WithOffset(3).WithLimit(3))
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(HaveLen(2))
			Expect(page[1].Id).To(Equal(first.Id))
		})

		It("counts nothing for facilities without events", func() {
			count, err := repo.CountForFacility(context.Background(), primitive.NewObjectID())
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("LatestForPatient", func() {
		It("returns the most recent event at the accessible facilities", func() {
			first := create(resultsTest.RandomTestEvent())
			second := sameFacility(first)
			second.PatientId = first.PatientId
			second = create(second)

			elsewhere := resultsTest.RandomTestEvent()
			elsewhere.PatientId = first.PatientId
			create(elsewhere)

			latest, err := repo.LatestForPatient(context.Background(), first.PatientId, []primitive.ObjectID{first.FacilityId})
			Expect(err).ToNot(HaveOccurred())
			Expect(latest.Id).To(Equal(second.Id))
		})

		It("returns not found without accessible facilities", func() {
			event := create(resultsTest.RandomTestEvent())
			_, err := repo.LatestForPatient(context.Background(), event.PatientId, nil)
			Expect(err).To(MatchError(results.ErrNotFound))
		})
	})

	Describe("CountResults", func() {
		var positive *results.TestEvent
		var negative *results.TestEvent

		BeforeEach(func() {
			positive = resultsTest.RandomTestEvent()
			positive.Result = orders.ResultPositive
			positive = create(positive)

			negative = sameFacility(positive)
			negative.Result = orders.ResultNegative
			negative = create(negative)

			create(correctionOf(positive))
		})

		It("counts every event of the patients including corrections", func() {
			counts, err := repo.CountResults(context.Background(), results.CountFilter{
				FacilityId: positive.FacilityId,
				PatientIds: []primitive.ObjectID{positive.PatientId, negative.PatientId},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(counts.Total).To(BeEquivalentTo(3))
			Expect(counts.Positive).To(BeEquivalentTo(2))
		})

		It("only counts the requested patients", func() {
			counts, err := repo.CountResults(context.Background(), results.CountFilter{
				FacilityId: positive.FacilityId,
				PatientIds: []primitive.ObjectID{negative.PatientId},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(counts.Total).To(BeEquivalentTo(1))
			Expect(counts.Positive).To(BeZero())
		})

		It("applies the lower bound on the creation time", func() {
			since := store.Now().Add(time.Hour)
			counts, err := repo.CountResults(context.Background(), results.CountFilter{
				FacilityId: positive.FacilityId,
				PatientIds: []primitive.ObjectID{positive.PatientId, negative.PatientId},
				Since:      &since,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(counts.Total).To(BeZero())
		})

		It("counts nothing without patients", func() {
			counts, err := repo.CountResults(context.Background(), results.CountFilter{FacilityId: positive.FacilityId})
			Expect(err).ToNot(HaveOccurred())
			Expect(counts.Total).To(BeZero())
		})

		It("lists the tested patients of the facility", func() {
			ids, err := repo.DistinctPatientIds(context.Background(), positive.FacilityId)
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(ConsistOf(positive.PatientId, negative.PatientId))
		})
	})

	Describe("ListWindow", func() {
		var events []*results.TestEvent

		BeforeEach(func() {
			events = nil
			for i := 0; i < 3; i++ {
				events = append(events, create(resultsTest.RandomTestEvent()))
			}
		})

		It("returns events in creation order up to the limit", func() {
			window, err := repo.ListWindow(context.Background(), results.Window{Until: store.Now(), Limit: 2})
			Expect(err).ToNot(HaveOccurred())
			Expect(window).To(HaveLen(2))
			Expect(window[0].Id).To(Equal(events[0].Id))
			Expect(window[1].Id).To(Equal(events[1].Id))
		})

		It("resumes after the watermark", func() {
			window, err := repo.ListWindow(context.Background(), results.Window{
				After:         events[1].CreatedTime,
				AfterSequence: events[1].Sequence,
				Until:         store.Now(),
				Limit:         10,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(window).To(HaveLen(1))
			Expect(window[0].Id).To(Equal(events[2].Id))
		})

		It("excludes events created after the upper bound", func() {
			window, err := repo.ListWindow(context.Background(), results.Window{
				Until: events[0].CreatedTime.Add(-time.Millisecond),
				Limit: 10,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(window).To(BeEmpty())
		})
	})
})
