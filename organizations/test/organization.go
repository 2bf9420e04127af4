package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/organizations"
	"github.com/labnet/testledger/test"
)

func RandomOrganization() *organizations.Organization {
	id := primitive.NewObjectID()
	return &organizations.Organization{
		Id:         &id,
		ExternalId: test.Faker.UUID().V4(),
		Name:       test.Faker.Company().Name(),
	}
}
