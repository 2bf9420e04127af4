package repository_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/labnet/testledger/export"
	"github.com/labnet/testledger/export/repository"
	"github.com/labnet/testledger/store"
	dbTest "github.com/labnet/testledger/store/test"
)

var _ = Describe("Export run repository", func() {
	var repo export.Repository
	var lifecycle *fxtest.Lifecycle

	BeforeEach(func() {
		database := dbTest.GetTestDatabase()
		_, err := database.Collection(export.CollectionName).DeleteMany(context.Background(), bson.M{})
		Expect(err).ToNot(HaveOccurred())

		lifecycle = fxtest.NewLifecycle(GinkgoT())
		repo, err = repository.NewRepository(database, zap.NewNop().Sugar(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		lifecycle.RequireStop()
	})

	It("has no watermark before the first successful run", func() {
		_, err := repo.LatestSuccess(context.Background())
		Expect(err).To(MatchError(export.ErrNoWatermark))
	})

	It("uses a seeded run as the watermark", func() {
		at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Seed(context.Background(), at)
		Expect(err).ToNot(HaveOccurred())

		latest, err := repo.LatestSuccess(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(latest.Watermark().Time).To(Equal(at))
		Expect(latest.Watermark().Sequence).To(BeZero())
	})

	It("ignores running and failed runs when reading the watermark", func() {
		at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Seed(context.Background(), at)
		Expect(err).ToNot(HaveOccurred())

		watermark := export.Watermark{Time: at}
		failed, err := repo.Start(context.Background(), store.Now(), watermark)
		Expect(err).ToNot(HaveOccurred())
		_, err = repo.Finish(context.Background(), *failed.Id, export.Completion{
			Status:       export.RunStatusFailed,
			Latest:       export.Watermark{Time: at.Add(time.Hour), Sequence: 10},
			ErrorMessage: "registry responded with status 500",
		})
		Expect(err).ToNot(HaveOccurred())

		_, err = repo.Start(context.Background(), store.Now(), watermark)
		Expect(err).ToNot(HaveOccurred())

		latest, err := repo.LatestSuccess(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(latest.Watermark()).To(Equal(watermark))
	})

	It("advances the watermark with each successful run", func() {
		at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Seed(context.Background(), at)
		Expect(err).ToNot(HaveOccurred())

		run, err := repo.Start(context.Background(), store.Now(), export.Watermark{Time: at})
		Expect(err).ToNot(HaveOccurred())
		Expect(run.Status).To(Equal(export.RunStatusRunning))

		latest := export.Watermark{Time: at.Add(time.Minute), Sequence: 42}
		Expect(repo.MarkRowCount(context.Background(), *run.Id, 3, latest)).To(Succeed())

		finished, err := repo.Finish(context.Background(), *run.Id, export.Completion{
			Status:           export.RunStatusSuccess,
			Latest:           latest,
			RecordsProcessed: 3,
			ResponseData:     `{"id":"report"}`,
			Warning:          "full batch",
			ArchiveKey:       "exports/key.csv",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(finished.Status).To(Equal(export.RunStatusSuccess))
		Expect(finished.RecordsProcessed).To(Equal(3))
		Expect(finished.ArchiveKey).To(Equal("exports/key.csv"))
		Expect(finished.FinishedTime).ToNot(BeNil())

		current, err := repo.LatestSuccess(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(current.Watermark()).To(Equal(latest))
	})

	It("does not modify a finished run", func() {
		run, err := repo.Start(context.Background(), store.Now(), export.Watermark{Time: store.Now()})
		Expect(err).ToNot(HaveOccurred())

		_, err = repo.Finish(context.Background(), *run.Id, export.Completion{Status: export.RunStatusFailed})
		Expect(err).ToNot(HaveOccurred())

		_, err = repo.Finish(context.Background(), *run.Id, export.Completion{Status: export.RunStatusSuccess})
		Expect(err).To(HaveOccurred())
	})

	It("lists runs most recent first", func() {
		first, err := repo.Start(context.Background(), store.Now().Add(-time.Minute), export.Watermark{})
		Expect(err).ToNot(HaveOccurred())
		second, err := repo.Start(context.Background(), store.Now(), export.Watermark{})
		Expect(err).ToNot(HaveOccurred())

		runs, err := repo.List(context.Background(), store.DefaultPagination())
		Expect(err).ToNot(HaveOccurred())
		Expect(runs).To(HaveLen(2))
		Expect(*runs[0].Id).To(Equal(*second.Id))
		Expect(*runs[1].Id).To(Equal(*first.Id))
	})
})
