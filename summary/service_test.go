package summary_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	errs "github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	facilitiesTest "github.com/labnet/testledger/facilities/test"
	"github.com/labnet/testledger/persons"
	personsTest "github.com/labnet/testledger/persons/test"
	"github.com/labnet/testledger/results"
	resultsTest "github.com/labnet/testledger/results/test"
	"github.com/labnet/testledger/scoping"
	scopingTest "github.com/labnet/testledger/scoping/test"
	"github.com/labnet/testledger/summary"
	"github.com/labnet/testledger/test"
)

var _ = Describe("Summary service", func() {
	var ctrl *gomock.Controller
	var gate *scopingTest.MockGate
	var personsRepo *personsTest.MockRepository
	var resultsRepo *resultsTest.MockRepository
	var svc summary.Service
	var facility *facilities.Facility

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		gate = scopingTest.NewMockGate(ctrl)
		personsRepo = personsTest.NewMockRepository(ctrl)
		resultsRepo = resultsTest.NewMockRepository(ctrl)
		svc = summary.NewService(gate, personsRepo, resultsRepo, zap.NewNop().Sugar())
		facility = facilitiesTest.RandomFacility(primitive.NewObjectID())
	})

	It("computes the percentage of positive tests", func() {
		Expect(summary.PercentPositive(3, 10)).To(BeNumerically("~", 30.0, 0.0001))
		Expect(summary.PercentPositive(0, 0)).To(BeZero())
	})

	Describe("Summarize", func() {
		BeforeEach(func() {
			gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(facility, nil)
		})

		It("summarizes all patients without filters", func() {
			patientIds := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
			personsRepo.EXPECT().
				ListIds(gomock.Any(), test.Match(func(f *persons.Filter) bool {
					return f.Demographic == nil && *f.VisibleAtFacilityId == *facility.Id && f.OrganizationId == facility.OrganizationId
				})).
				Return(patientIds, nil)
			resultsRepo.EXPECT().
				CountResults(gomock.Any(), results.CountFilter{FacilityId: *facility.Id, PatientIds: patientIds}).
				Return(&results.ResultCounts{Total: 10, Positive: 3}, nil)

			summaries, err := svc.Summarize(context.Background(), facility.Id.Hex(), nil, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].Description).To(Equal("All patients"))
			Expect(summaries[0].TotalTests).To(BeEquivalentTo(10))
			Expect(summaries[0].PositiveTests).To(BeEquivalentTo(3))
			Expect(summaries[0].PercentPositive).To(BeNumerically("~", 30.0, 0.0001))
		})

		It("reports zero percent when there are no tests", func() {
			personsRepo.EXPECT().ListIds(gomock.Any(), gomock.Any()).Return(nil, nil)
			resultsRepo.EXPECT().CountResults(gomock.Any(), gomock.Any()).Return(&results.ResultCounts{}, nil)

			summaries, err := svc.Summarize(context.Background(), facility.Id.Hex(), nil, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries[0].TotalTests).To(BeZero())
			Expect(summaries[0].PercentPositive).To(BeZero())
		})

		It("passes the lower bound to the count", func() {
			since := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
			personsRepo.EXPECT().ListIds(gomock.Any(), gomock.Any()).Return(nil, nil)
			resultsRepo.EXPECT().
				CountResults(gomock.Any(), test.Match(func(f results.CountFilter) bool { return f.Since != nil && f.Since.Equal(since) })).
				Return(&results.ResultCounts{}, nil)

			summaries, err := svc.Summarize(context.Background(), facility.Id.Hex(), nil, &since)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries[0].Since).To(Equal(&since))
		})

		It("isolates failures to the summary of the failing filter", func() {
			race := "black"
			after := "2000-01-01"
			before := "1990-01-01"
			valid := &persons.Demographic{Race: &race}
			invalid := &persons.Demographic{BornOnOrAfter: &after, BornOnOrBefore: &before}
			failing := &persons.Demographic{EmployedInHealthcare: new(bool)}

			personsRepo.EXPECT().
				ListIds(gomock.Any(), test.Match(func(f *persons.Filter) bool { return f.Demographic == valid })).
				Return([]primitive.ObjectID{primitive.NewObjectID()}, nil)
			personsRepo.EXPECT().
				ListIds(gomock.Any(), test.Match(func(f *persons.Filter) bool { return f.Demographic == failing })).
				Return(nil, errors.New("connection reset"))
			resultsRepo.EXPECT().CountResults(gomock.Any(), gomock.Any()).Return(&results.ResultCounts{Total: 4, Positive: 1}, nil)

			summaries, err := svc.Summarize(context.Background(), facility.Id.Hex(), []*persons.Demographic{valid, invalid, failing}, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(3))

			Expect(summaries[0].Err).ToNot(HaveOccurred())
			Expect(summaries[0].PercentPositive).To(BeNumerically("~", 25.0, 0.0001))
			Expect(summaries[0].Description).To(Equal("Race is black"))

			Expect(summaries[1].Err).To(MatchError(errs.BadRequest))
			Expect(summaries[1].TotalTests).To(BeZero())

			Expect(summaries[2].Err).To(MatchError("connection reset"))
		})
	})

	It("fails for inaccessible facilities", func() {
		gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(nil, scoping.AccessError{FacilityId: facility.Id.Hex()})

		_, err := svc.Summarize(context.Background(), facility.Id.Hex(), nil, nil)
		Expect(err).To(MatchError(errs.Forbidden))
	})

	It("counts the demographic values of tested patients", func() {
		first := personsTest.RandomPerson(facility.OrganizationId)
		first.Race = "white"
		first.GenderIdentity = []string{"woman"}
		second := personsTest.RandomPerson(facility.OrganizationId)
		second.Race = "white"
		second.GenderIdentity = []string{"nonbinary", "woman"}
		third := personsTest.RandomPerson(facility.OrganizationId)
		third.Race = "asian"
		third.GenderIdentity = nil

		ids := []primitive.ObjectID{*first.Id, *second.Id, *third.Id}
		gate.EXPECT().FacilityInCurrentOrg(gomock.Any(), facility.Id.Hex()).Return(facility, nil)
		resultsRepo.EXPECT().DistinctPatientIds(gomock.Any(), *facility.Id).Return(ids, nil)
		personsRepo.EXPECT().
			List(gomock.Any(), test.Match(func(f *persons.Filter) bool { return len(f.Ids) == 3 }), gomock.Any()).
			Return([]*persons.Person{first, second, third}, nil)

		values, err := svc.DemographicValues(context.Background(), facility.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(values.Races).To(Equal([]summary.ValueCount{{Value: "white", Count: 2}, {Value: "asian", Count: 1}}))
		Expect(values.GenderIdentities).To(Equal([]summary.ValueCount{{Value: "woman", Count: 2}, {Value: "nonbinary", Count: 1}}))
		Expect(values.Roles).To(Equal([]summary.ValueCount{{Value: string(persons.RoleStaff), Count: 3}}))
	})
})
