package test

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/test"
)

// RandomPerson returns a normalized patient of the organization that is visible at every facility
func RandomPerson(organizationId primitive.ObjectID) *persons.Person {
	id := primitive.NewObjectID()
	lookupId := test.Faker.UUID().V4()
	return &persons.Person{
		Id:             &id,
		OrganizationId: organizationId,
		LookupId:       &lookupId,
		Name: persons.Name{
			First: test.Faker.Person().FirstName(),
			Last:  test.Faker.Person().LastName(),
		},
		BirthDate: test.Faker.Time().ISO8601(time.Now())[:10],
		Address: addresses.Address{
			Street:     []string{test.Faker.Address().StreetAddress()},
			City:       test.Faker.Address().City(),
			State:      test.Faker.Address().StateAbbr(),
			PostalCode: test.Faker.Address().PostCode(),
		},
		PhoneNumbers:          []persons.PhoneNumber{{Type: "MOBILE", Number: test.Faker.Phone().Number()}},
		Emails:                []string{test.Faker.Internet().Email()},
		Role:                  persons.RoleStaff,
		Race:                  randomValue(persons.Races),
		Ethnicity:             randomValue(persons.Ethnicities),
		GenderIdentity:        []string{randomValue(persons.GenderIdentities)},
		GenderAssignedAtBirth: randomValue(persons.GendersAssignedAtBirth),
		SexualOrientation:     []string{randomValue(persons.SexualOrientations)},
		PreferredLanguage:     "English",
		TestResultDelivery:    persons.DeliveryPreferenceNone,
	}
}

func randomValue(values mapset.Set[string]) string {
	return test.Faker.RandomStringElement(mapset.Sorted(values))
}
