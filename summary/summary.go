package summary

import (
	"context"
	"time"

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/persons"
)

//go:generate mockgen --build_flags=--mod=mod -source=./summary.go -destination=./test/mock_service.go -package test

type Service interface {
	Summarize(ctx context.Context, facilityId string, filters []*persons.Demographic, since *time.Time) ([]*Summary, error)
	DemographicValues(ctx context.Context, facilityId string) (*DemographicValues, error)
}

// Summary is the positivity of a facility's tests for one demographic filter
type Summary struct {
	Facility        *facilities.Facility `json:"facility"`
	Filter          *persons.Demographic `json:"filter,omitempty"`
	Description     string               `json:"description"`
	TotalTests      int64                `json:"totalTests"`
	PositiveTests   int64                `json:"positiveTests"`
	PercentPositive float64              `json:"percentPositive"`
	Since           *time.Time           `json:"since,omitempty"`
	Err             error                `json:"-"`
}

// PercentPositive is zero when there are no tests
func PercentPositive(positive, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(positive) / float64(total)
}

// ValueCount is a demographic value and the number of patients who have it
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DemographicValues lists the values in use among a facility's tested
// patients, most common first
type DemographicValues struct {
	Roles                  []ValueCount `json:"roles"`
	Races                  []ValueCount `json:"races"`
	Ethnicities            []ValueCount `json:"ethnicities"`
	GenderIdentities       []ValueCount `json:"genderIdentities"`
	GendersAssignedAtBirth []ValueCount `json:"gendersAssignedAtBirth"`
	SexualOrientations     []ValueCount `json:"sexualOrientations"`
}
