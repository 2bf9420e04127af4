package summary

import (
	"cmp"
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/results"
	"github.com/labnet/testledger/scoping"
	"github.com/labnet/testledger/store"
)

type service struct {
	gate    scoping.Gate
	logger  *zap.SugaredLogger
	persons persons.Repository
	results results.Repository
}

var _ Service = &service{}

func NewService(gate scoping.Gate, persons persons.Repository, results results.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		gate:    gate,
		logger:  logger,
		persons: persons,
		results: results,
	}
}

// Summarize computes one summary per filter. A failing filter sets the error
// on its own summary and does not affect the others. A nil since means no
// lower bound.
func (s *service) Summarize(ctx context.Context, facilityId string, filters []*persons.Demographic, since *time.Time) ([]*Summary, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		filters = []*persons.Demographic{nil}
	}

	summaries := make([]*Summary, 0, len(filters))
	for _, filter := range filters {
		summary := &Summary{
			Facility:    facility,
			Filter:      filter,
			Description: filter.Description(),
			Since:       since,
		}

		counts, err := s.count(ctx, facility, filter, since)
		if err != nil {
			s.logger.Warnw("unable to summarize results", "facilityId", facilityId, "filter", summary.Description, "error", err)
			summary.Err = err
		} else {
			summary.TotalTests = counts.Total
			summary.PositiveTests = counts.Positive
			summary.PercentPositive = PercentPositive(counts.Positive, counts.Total)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *service) count(ctx context.Context, facility *facilities.Facility, filter *persons.Demographic, since *time.Time) (*results.ResultCounts, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	patientIds, err := s.persons.ListIds(ctx, &persons.Filter{
		OrganizationId:      facility.OrganizationId,
		VisibleAtFacilityId: facility.Id,
		Demographic:         filter,
	})
	if err != nil {
		return nil, err
	}

	return s.results.CountResults(ctx, results.CountFilter{
		FacilityId: *facility.Id,
		PatientIds: patientIds,
		Since:      since,
	})
}

func (s *service) DemographicValues(ctx context.Context, facilityId string) (*DemographicValues, error) {
	facility, err := s.gate.FacilityInCurrentOrg(ctx, facilityId)
	if err != nil {
		return nil, err
	}

	patientIds, err := s.results.DistinctPatientIds(ctx, *facility.Id)
	if err != nil {
		return nil, err
	}

	counters := map[string]map[string]int{}
	add := func(field, value string) {
		if value == "" {
			return
		}
		if counters[field] == nil {
			counters[field] = map[string]int{}
		}
		counters[field][value]++
	}

	pagination := store.DefaultPagination().WithLimit(store.MaximumLimit)
	for start := 0; start < len(patientIds); start += store.MaximumLimit {
		end := min(start+store.MaximumLimit, len(patientIds))
		patients, err := s.persons.List(ctx, &persons.Filter{
			OrganizationId: facility.OrganizationId,
			Ids:            patientIds[start:end],
		}, pagination)
		if err != nil {
			return nil, err
		}

		for _, p := range patients {
			add("role", string(p.Role))
			add("race", p.Race)
			add("ethnicity", p.Ethnicity)
			add("genderAssignedAtBirth", p.GenderAssignedAtBirth)
			for _, g := range p.GenderIdentity {
				add("genderIdentity", g)
			}
			for _, o := range p.SexualOrientation {
				add("sexualOrientation", o)
			}
		}
	}

	return &DemographicValues{
		Roles:                  sortedCounts(counters["role"]),
		Races:                  sortedCounts(counters["race"]),
		Ethnicities:            sortedCounts(counters["ethnicity"]),
		GenderIdentities:       sortedCounts(counters["genderIdentity"]),
		GendersAssignedAtBirth: sortedCounts(counters["genderAssignedAtBirth"]),
		SexualOrientations:     sortedCounts(counters["sexualOrientation"]),
	}, nil
}

// sortedCounts orders values by descending count, then by value
func sortedCounts(counts map[string]int) []ValueCount {
	values := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		values = append(values, ValueCount{Value: v, Count: c})
	}
	slices.SortFunc(values, func(a, b ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return values
}
