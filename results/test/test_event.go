package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	facilitiesTest "github.com/labnet/testledger/facilities/test"
	"github.com/labnet/testledger/orders"
	ordersTest "github.com/labnet/testledger/orders/test"
	personsTest "github.com/labnet/testledger/persons/test"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/test"
)

// RandomTestEvent returns an original event without an id or sequence. The
// repository assigns both on create.
func RandomTestEvent() *results.TestEvent {
	organizationId := primitive.NewObjectID()
	facility := facilitiesTest.RandomFacility(organizationId)
	patient := personsTest.RandomPerson(organizationId)
	return &results.TestEvent{
		OrganizationId:   organizationId,
		FacilityId:       *facility.Id,
		PatientId:        *patient.Id,
		TestOrderId:      primitive.NewObjectID(),
		Patient:          *patient,
		Facility:         *facility,
		Survey:           ordersTest.RandomSurvey(),
		DeviceType:       facility.DeviceTypes[0],
		Result:           ordersTest.RandomResult(),
		CorrectionStatus: orders.CorrectionStatusOriginal,
	}
}

// RandomStoredTestEvent returns an event as it would be read back from the repository
func RandomStoredTestEvent(sequence int64, createdTime time.Time) *results.TestEvent {
	event := RandomTestEvent()
	id := primitive.NewObjectID()
	event.Id = &id
	event.Sequence = sequence
	event.CreatedTime = createdTime
	return event
}

func RandomReason() string {
	return test.Faker.Lorem().Sentence(6)
}
