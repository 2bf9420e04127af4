package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/test"
)

var deviceTypes = []string{"Abbott BinaxNOW", "Quidel Sofia 2", "BD Veritor", "Abbott IDNow", "LumiraDx"}

// RandomFacility returns a facility of the organization with two allowed device types
func RandomFacility(organizationId primitive.ObjectID) *facilities.Facility {
	id := primitive.NewObjectID()
	devices := test.Faker.RandomStringElement(deviceTypes)
	other := test.Faker.RandomStringElement(deviceTypes)
	for other == devices {
		other = test.Faker.RandomStringElement(deviceTypes)
	}

	return &facilities.Facility{
		Id:             &id,
		OrganizationId: organizationId,
		Name:           test.Faker.Company().Name(),
		Address: addresses.Address{
			Street:     []string{test.Faker.Address().StreetAddress()},
			City:       test.Faker.Address().City(),
			State:      test.Faker.Address().StateAbbr(),
			PostalCode: test.Faker.Address().PostCode(),
		},
		Phone:      test.Faker.Phone().Number(),
		CliaNumber: test.Faker.Numerify("##D#######"),
		OrderingProvider: facilities.Provider{
			FirstName: test.Faker.Person().FirstName(),
			LastName:  test.Faker.Person().LastName(),
			NPI:       test.Faker.Numerify("##########"),
		},
		DeviceTypes:       []string{devices, other},
		DefaultDeviceType: &devices,
	}
}
