package outbox_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/labnet/testledger/outbox"
	dbTest "github.com/labnet/testledger/store/test"
)

var _ = Describe("Outbox Repository", func() {
	var repo outbox.Repository
	var database *mongo.Database
	var collection *mongo.Collection

	BeforeEach(func() {
		database = dbTest.GetTestDatabase()
		collection = database.Collection(outbox.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())

		var err error
		repo, err = outbox.NewRepository(database, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		_ = collection.Drop(context.Background())
	})

	Describe("Create", func() {
		It("persists the send test result event", func() {
			payload := outbox.SendTestResultPayload{
				OrganizationId:     "org123",
				FacilityName:       "Main Street Clinic",
				PatientId:          "patient123",
				TestEventId:        "event123",
				PatientLinkId:      "link123",
				DeliveryPreference: "SMS",
				Phone:              "(555) 555-0100",
			}

			event, err := outbox.NewEvent(outbox.EventTypeSendTestResult, payload)
			Expect(err).ToNot(HaveOccurred())

			err = repo.Create(context.Background(), event)
			Expect(err).ToNot(HaveOccurred())

			var result outbox.Event
			err = collection.FindOne(context.Background(), bson.M{"eventType": string(outbox.EventTypeSendTestResult)}).Decode(&result)
			Expect(err).ToNot(HaveOccurred())

			Expect(result.Id).ToNot(BeNil())
			Expect(result.EventType).To(Equal(outbox.EventTypeSendTestResult))
			Expect(result.CreatedTime).ToNot(BeZero())
			Expect(result.Payload).ToNot(BeEmpty())

			var decodedPayload outbox.SendTestResultPayload
			Expect(result.DecodePayload(&decodedPayload)).To(Succeed())
			Expect(decodedPayload).To(Equal(payload))
		})
	})
})
