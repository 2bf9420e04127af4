package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/orders"
	"github.com/labnet/testledger/store"
	"github.com/labnet/testledger/test"
)

func RandomSurvey() orders.Survey {
	noSymptoms := test.Faker.Bool()
	firstTest := test.Faker.Bool()
	survey := orders.Survey{
		NoSymptoms: &noSymptoms,
		FirstTest:  &firstTest,
	}
	if !noSymptoms {
		onset := "2024-01-02"
		survey.Symptoms = map[string]bool{"fever": true, "cough": test.Faker.Bool()}
		survey.SymptomOnsetDate = &onset
	}
	return survey
}

// RandomPendingOrder returns a pending order for the patient at the facility
func RandomPendingOrder(organizationId, facilityId, patientId primitive.ObjectID) *orders.Order {
	id := primitive.NewObjectID()
	linkId := test.Faker.UUID().V4()
	now := store.Now()
	return &orders.Order{
		Id:               &id,
		OrganizationId:   organizationId,
		FacilityId:       facilityId,
		PatientId:        patientId,
		Survey:           RandomSurvey(),
		OrderStatus:      orders.OrderStatusPending,
		CorrectionStatus: orders.CorrectionStatusOriginal,
		PatientLinkId:    &linkId,
		CreatedTime:      now,
		UpdatedTime:      now,
	}
}

func RandomResult() orders.Result {
	return orders.Result(test.Faker.RandomStringElement([]string{
		string(orders.ResultPositive),
		string(orders.ResultNegative),
		string(orders.ResultUndetermined),
	}))
}
