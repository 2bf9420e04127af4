package repository_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/labnet/testledger/organizations"
	"github.com/labnet/testledger/organizations/repository"
	organizationsTest "github.com/labnet/testledger/organizations/test"
	dbTest "github.com/labnet/testledger/store/test"
)

var _ = Describe("Organizations repository", func() {
	var database *mongo.Database
	var repo organizations.Repository
	var lifecycle *fxtest.Lifecycle

	BeforeEach(func() {
		database = dbTest.GetTestDatabase()
		for _, name := range []string{organizations.CollectionName, "organization_deletions"} {
			_, err := database.Collection(name).DeleteMany(context.Background(), bson.M{})
			Expect(err).ToNot(HaveOccurred())
		}

		var err error
		lifecycle = fxtest.NewLifecycle(GinkgoT())
		repo, err = repository.NewRepository(database, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		lifecycle.RequireStop()
	})

	It("creates and fetches an organization by id and external id", func() {
		created, err := repo.Create(context.Background(), organizationsTest.RandomOrganization())
		Expect(err).ToNot(HaveOccurred())

		byId, err := repo.Get(context.Background(), created.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(byId.Name).To(Equal(created.Name))

		byExternalId, err := repo.GetByExternalId(context.Background(), created.ExternalId)
		Expect(err).ToNot(HaveOccurred())
		Expect(byExternalId.Id).To(Equal(created.Id))
	})

	It("rejects duplicate external ids", func() {
		first, err := repo.Create(context.Background(), organizationsTest.RandomOrganization())
		Expect(err).ToNot(HaveOccurred())

		second := organizationsTest.RandomOrganization()
		second.ExternalId = first.ExternalId
		_, err = repo.Create(context.Background(), second)
		Expect(err).To(MatchError(organizations.ErrDuplicateExternalId))
	})

	It("returns not found for invalid ids", func() {
		_, err := repo.Get(context.Background(), "invalid")
		Expect(err).To(MatchError(organizations.ErrNotFound))

		_, err = repo.Get(context.Background(), primitive.NewObjectID().Hex())
		Expect(err).To(MatchError(organizations.ErrNotFound))
	})

	It("soft deletes and archives organizations", func() {
		created, err := repo.Create(context.Background(), organizationsTest.RandomOrganization())
		Expect(err).ToNot(HaveOccurred())

		deleted, err := repo.Delete(context.Background(), created.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(deleted.IsDeleted()).To(BeTrue())

		_, err = repo.Get(context.Background(), created.Id.Hex())
		Expect(err).To(MatchError(organizations.ErrNotFound))

		_, err = repo.Delete(context.Background(), created.Id.Hex())
		Expect(err).To(MatchError(organizations.ErrNotFound))

		count, err := database.Collection("organization_deletions").CountDocuments(context.Background(), bson.M{"organization._id": created.Id})
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(BeEquivalentTo(1))
	})
})
