// Package scoping resolves the organization and facilities the caller may act
// on. Authentication and authorization happen upstream; this package only
// carries their outcome to the core services.
package scoping

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/facilities"
	"github.com/labnet/testledger/organizations"
)

var (
	ErrMissingScope = fmt.Errorf("%w: request is not bound to an organization", errors.Unauthorized)
)

// AccessError is returned when a facility is outside the caller's organization
// or the caller's set of accessible facilities
type AccessError struct {
	FacilityId string
}

func (e AccessError) Error() string {
	return fmt.Sprintf("facility %s is not accessible", e.FacilityId)
}

func (e AccessError) Unwrap() error {
	return errors.Forbidden
}

//go:generate mockgen --build_flags=--mod=mod -source=./scoping.go -destination=./test/mock_gate.go -package test

type Gate interface {
	CurrentOrganization(ctx context.Context) (*organizations.Organization, error)
	AccessibleFacilities(ctx context.Context) ([]*facilities.Facility, error)
	FacilityInCurrentOrg(ctx context.Context, facilityId string) (*facilities.Facility, error)
}

// Scope is the caller identity as asserted by the upstream gateway
type Scope struct {
	OrganizationId string
	// FacilityIds is nil when the caller may act on every facility of the organization
	FacilityIds []string
	Email       string
}

type scopeContextKey struct{}

func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeContextKey{}).(Scope)
	return scope, ok && scope.OrganizationId != ""
}

// FacilityIds returns the ids of the facilities
func FacilityIds(list []*facilities.Facility) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, f := range list {
		if f.Id != nil {
			ids = append(ids, *f.Id)
		}
	}
	return ids
}

func FacilityIdSet(list []*facilities.Facility) mapset.Set[primitive.ObjectID] {
	return mapset.NewThreadUnsafeSet(FacilityIds(list)...)
}
