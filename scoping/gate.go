package scoping

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/organizations"
)

type requestGate struct {
	organizations organizations.Service
	facilities    facilities.Service
}

var _ Gate = &requestGate{}

// NewRequestGate returns a gate which resolves the Scope carried by the
// request context
func NewRequestGate(organizations organizations.Service, facilities facilities.Service) Gate {
	return &requestGate{
		organizations: organizations,
		facilities:    facilities,
	}
}

func (r *requestGate) CurrentOrganization(ctx context.Context) (*organizations.Organization, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrMissingScope
	}

	organization, err := r.organizations.Get(ctx, scope.OrganizationId)
	if errors.Is(err, organizations.ErrNotFound) {
		return nil, ErrMissingScope
	}
	return organization, err
}

func (r *requestGate) AccessibleFacilities(ctx context.Context) ([]*facilities.Facility, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrMissingScope
	}

	all, err := r.facilities.List(ctx, scope.OrganizationId)
	if err != nil {
		return nil, err
	}
	if scope.FacilityIds == nil {
		return all, nil
	}

	allowed := mapset.NewThreadUnsafeSet(scope.FacilityIds...)
	accessible := make([]*facilities.Facility, 0, len(all))
	for _, f := range all {
		if allowed.Contains(f.Id.Hex()) {
			accessible = append(accessible, f)
		}
	}
	return accessible, nil
}

func (r *requestGate) FacilityInCurrentOrg(ctx context.Context, facilityId string) (*facilities.Facility, error) {
	organization, err := r.CurrentOrganization(ctx)
	if err != nil {
		return nil, err
	}

	facility, err := r.facilities.Get(ctx, facilityId)
	if errors.Is(err, facilities.ErrNotFound) {
		return nil, AccessError{FacilityId: facilityId}
	} else if err != nil {
		return nil, err
	}
	if facility.OrganizationId != *organization.Id {
		return nil, AccessError{FacilityId: facilityId}
	}

	scope, _ := ScopeFromContext(ctx)
	if scope.FacilityIds != nil && !mapset.NewThreadUnsafeSet(scope.FacilityIds...).Contains(facilityId) {
		return nil, AccessError{FacilityId: facilityId}
	}
	return facility, nil
}
