package addresses

import (
	"context"
	"strings"
)

type Address struct {
	Street     []string `bson:"street,omitempty" json:"street,omitempty"`
	City       string   `bson:"city,omitempty" json:"city,omitempty"`
	County     string   `bson:"county,omitempty" json:"county,omitempty"`
	State      string   `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string   `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

func (a Address) IsEmpty() bool {
	return len(a.Street) == 0 && a.City == "" && a.State == "" && a.PostalCode == ""
}

func (a Address) String() string {
	parts := append([]string{}, a.Street...)
	for _, p := range []string{a.City, a.State, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Validator normalizes an address with an external address validation provider
type Validator interface {
	Validate(ctx context.Context, address Address) (Address, error)
}

type passthroughValidator struct{}

func NewPassthroughValidator() Validator {
	return passthroughValidator{}
}

func (passthroughValidator) Validate(_ context.Context, address Address) (Address, error) {
	address.State = strings.ToUpper(strings.TrimSpace(address.State))
	address.PostalCode = strings.TrimSpace(address.PostalCode)
	return address, nil
}
