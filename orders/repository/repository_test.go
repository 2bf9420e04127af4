package repository_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/orders/repository"
	ordersTest "github.com/labnet/testledger/orders/test"
	"github.com/labnet/testledger/store"
	dbTest "github.com/labnet/testledger/store/test"
)

var _ = Describe("Orders repository", func() {
	var repo orders.Repository
	var lifecycle *fxtest.Lifecycle
	var organizationId primitive.ObjectID
	var facilityId primitive.ObjectID

	BeforeEach(func() {
		database := dbTest.GetTestDatabase()
		_, err := database.Collection(orders.CollectionName).DeleteMany(context.Background(), bson.M{})
		Expect(err).ToNot(HaveOccurred())

		lifecycle = fxtest.NewLifecycle(GinkgoT())
		repo, err = repository.NewRepository(database, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		organizationId = primitive.NewObjectID()
		facilityId = primitive.NewObjectID()
	})

	AfterEach(func() {
		lifecycle.RequireStop()
	})

	create := func(patientId primitive.ObjectID) *orders.Order {
		created, err := repo.Create(context.Background(), ordersTest.RandomPendingOrder(organizationId, facilityId, patientId))
		Expect(err).ToNot(HaveOccurred())
		return created
	}

	It("creates a pending order", func() {
		created := create(primitive.NewObjectID())

		fetched, err := repo.Get(context.Background(), created.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(fetched.OrderStatus).To(Equal(orders.OrderStatusPending))
		Expect(fetched.CorrectionStatus).To(Equal(orders.CorrectionStatusOriginal))
		Expect(fetched.Survey).To(Equal(created.Survey))
	})

	It("allows a single pending order per patient", func() {
		patientId := primitive.NewObjectID()
		create(patientId)

		_, err := repo.Create(context.Background(), ordersTest.RandomPendingOrder(organizationId, facilityId, patientId))
		Expect(err).To(MatchError(errs.Duplicate))
	})

	It("allows a single pending order per patient when requests race", func() {
		patientId := primitive.NewObjectID()

		var wg sync.WaitGroup
		results := make([]error, 5)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				_, results[i] = repo.Create(context.Background(), ordersTest.RandomPendingOrder(organizationId, facilityId, patientId))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
			} else {
				Expect(err).To(MatchError(errs.Duplicate))
			}
		}
		Expect(succeeded).To(Equal(1))
	})

	It("allows a new pending order after the previous one was canceled", func() {
		patientId := primitive.NewObjectID()
		first := create(patientId)

		_, err := repo.Cancel(context.Background(), *first.Id)
		Expect(err).ToNot(HaveOccurred())

		second := create(patientId)
		pending, err := repo.GetPending(context.Background(), organizationId, patientId)
		Expect(err).ToNot(HaveOccurred())
		Expect(pending.Id).To(Equal(second.Id))
	})

	It("returns no active order when the patient has no pending order", func() {
		_, err := repo.GetPending(context.Background(), organizationId, primitive.NewObjectID())
		Expect(err).To(BeAssignableToTypeOf(orders.NoActiveOrderError{}))
		Expect(err).To(MatchError(errs.NotFound))
	})

	It("lists the facility queue in creation order", func() {
		first := create(primitive.NewObjectID())
		second := create(primitive.NewObjectID())
		canceled := create(primitive.NewObjectID())
		_, err := repo.Cancel(context.Background(), *canceled.Id)
		Expect(err).ToNot(HaveOccurred())

		status := orders.OrderStatusPending
		queue, err := repo.List(context.Background(), orders.Filter{FacilityId: &facilityId, OrderStatus: &status}, store.DefaultPagination())
		Expect(err).ToNot(HaveOccurred())
		Expect(queue).To(HaveLen(2))
		Expect(queue[0].Id).To(Equal(first.Id))
		Expect(queue[1].Id).To(Equal(second.Id))
	})

	Describe("Complete", func() {
		It("completes a pending order once", func() {
			created := create(primitive.NewObjectID())
			completion := orders.Completion{
				TestEventId: primitive.NewObjectID(),
				DeviceType:  "Abbott BinaxNOW",
				Result:      orders.ResultPositive,
			}

			completed, err := repo.Complete(context.Background(), *created.Id, completion)
			Expect(err).ToNot(HaveOccurred())
			Expect(completed.OrderStatus).To(Equal(orders.OrderStatusCompleted))
			Expect(completed.TestEventId).To(PointTo(Equal(completion.TestEventId)))
			Expect(completed.Result).To(PointTo(Equal(orders.ResultPositive)))

			_, err = repo.Complete(context.Background(), *created.Id, completion)
			Expect(err).To(BeAssignableToTypeOf(orders.NoActiveOrderError{}))
		})

		It("returns not found for unknown orders", func() {
			_, err := repo.Complete(context.Background(), primitive.NewObjectID(), orders.Completion{})
			Expect(err).To(MatchError(orders.ErrNotFound))
		})
	})

	Describe("MarkCorrected", func() {
		var completed *orders.Order

		BeforeEach(func() {
			created := create(primitive.NewObjectID())
			var err error
			completed, err = repo.Complete(context.Background(), *created.Id, orders.Completion{
				TestEventId: primitive.NewObjectID(),
				DeviceType:  "Abbott BinaxNOW",
				Result:      orders.ResultNegative,
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("moves the event pointer", func() {
			correction := orders.Correction{
				ExpectedTestEventId: *completed.TestEventId,
				TestEventId:         primitive.NewObjectID(),
				CorrectionStatus:    orders.CorrectionStatusRemoved,
				ReasonForCorrection: "Duplicate test",
			}

			corrected, err := repo.MarkCorrected(context.Background(), *completed.Id, correction)
			Expect(err).ToNot(HaveOccurred())
			Expect(corrected.TestEventId).To(PointTo(Equal(correction.TestEventId)))
			Expect(corrected.CorrectionStatus).To(Equal(orders.CorrectionStatusRemoved))
			Expect(corrected.ReasonForCorrection).To(PointTo(Equal("Duplicate test")))
		})

		It("rejects stale corrections", func() {
			correction := orders.Correction{
				ExpectedTestEventId: primitive.NewObjectID(),
				TestEventId:         primitive.NewObjectID(),
				CorrectionStatus:    orders.CorrectionStatusCorrected,
			}

			_, err := repo.MarkCorrected(context.Background(), *completed.Id, correction)
			Expect(err).To(MatchError(errs.Conflict))
		})
	})

	It("cancels every pending order of the organization", func() {
		create(primitive.NewObjectID())
		create(primitive.NewObjectID())
		other, err := repo.Create(context.Background(), ordersTest.RandomPendingOrder(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()))
		Expect(err).ToNot(HaveOccurred())

		count, err := repo.CancelAllPending(context.Background(), organizationId)
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(BeEquivalentTo(2))

		fetched, err := repo.Get(context.Background(), other.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(fetched.IsPending()).To(BeTrue())
	})
})
