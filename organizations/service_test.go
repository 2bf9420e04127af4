package organizations_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/labnet/testledger/organizations"
	organizationsTest "github.com/labnet/testledger/organizations/test"
)

var _ = Describe("Organizations service", func() {
	var ctrl *gomock.Controller
	var repo *organizationsTest.MockRepository
	var service organizations.Service
	var organization *organizations.Organization

	BeforeEach(func() {
		var err error
		ctrl = gomock.NewController(GinkgoT())
		repo = organizationsTest.NewMockRepository(ctrl)
		service, err = organizations.NewService(repo, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		organization = organizationsTest.RandomOrganization()
	})

	It("caches lookups by id", func() {
		repo.EXPECT().Get(gomock.Any(), organization.Id.Hex()).Return(organization, nil).Times(1)

		for i := 0; i < 3; i++ {
			result, err := service.Get(context.Background(), organization.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(Equal(organization))
		}
	})

	It("does not cache failed lookups", func() {
		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), organization.Id.Hex()).Return(nil, organizations.ErrNotFound),
			repo.EXPECT().Get(gomock.Any(), organization.Id.Hex()).Return(organization, nil),
		)

		_, err := service.Get(context.Background(), organization.Id.Hex())
		Expect(err).To(MatchError(organizations.ErrNotFound))

		result, err := service.Get(context.Background(), organization.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(organization))
	})

	It("evicts deleted organizations from the cache", func() {
		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), organization.Id.Hex()).Return(organization, nil),
			repo.EXPECT().Delete(gomock.Any(), organization.Id.Hex()).Return(organization, nil),
			repo.EXPECT().Get(gomock.Any(), organization.Id.Hex()).Return(nil, organizations.ErrNotFound),
		)

		_, err := service.Get(context.Background(), organization.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(service.Delete(context.Background(), organization.Id.Hex())).To(Succeed())

		_, err = service.Get(context.Background(), organization.Id.Hex())
		Expect(err).To(MatchError(organizations.ErrNotFound))
	})

	It("does not cache lookups by external id", func() {
		repo.EXPECT().GetByExternalId(gomock.Any(), organization.ExternalId).Return(organization, nil).Times(2)

		for i := 0; i < 2; i++ {
			_, err := service.GetByExternalId(context.Background(), organization.ExternalId)
			Expect(err).ToNot(HaveOccurred())
		}
	})
})
