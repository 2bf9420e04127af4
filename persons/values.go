package persons

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/labnet/testledger/errors"
)

var (
	Races                  = mapset.NewSet("native", "asian", "black", "pacific", "white", "unknown", "refused")
	Ethnicities            = mapset.NewSet("hispanic", "not_hispanic", "refused", "unknown")
	GenderIdentities       = mapset.NewSet("woman", "man", "nonbinary", "questioning", "not_disclosed")
	GendersAssignedAtBirth = mapset.NewSet("female", "male", "x", "unsure", "not_assigned", "not_disclosed")
	SexualOrientations     = mapset.NewSet("asexual", "bisexual_or_pansexual", "heterosexual", "homosexual", "questioning", "not_disclosed")
	Roles                  = mapset.NewSet(RoleStaff, RoleResident, RoleStudent, RoleVisitor, RoleUnknown)
	MaxCustomValuesAllowed = 1
	MaxCustomValueLength   = 64
)

// NormalizeValues lowercases the known values, keeps at most one custom value
// verbatim and rejects anything else.
func NormalizeValues(field string, values []string, known mapset.Set[string]) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	result := mapset.NewThreadUnsafeSet[string]()
	custom := mapset.NewThreadUnsafeSet[string]()
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if known.Contains(strings.ToLower(v)) {
			result.Add(strings.ToLower(v))
			continue
		}
		if len(v) > MaxCustomValueLength {
			return nil, fmt.Errorf("%w: %s custom value is too long", errors.BadRequest, field)
		}
		custom.Add(v)
	}
	if custom.Cardinality() > MaxCustomValuesAllowed {
		return nil, fmt.Errorf("%w: %s accepts at most %d custom value", errors.BadRequest, field, MaxCustomValuesAllowed)
	}

	return append(mapset.Sorted(result), custom.ToSlice()...), nil
}

func normalizeSingle(field, value string, known mapset.Set[string]) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	if !known.Contains(value) {
		return "", fmt.Errorf("%w: %q is not a valid %s", errors.BadRequest, value, field)
	}
	return value, nil
}

// Normalize validates the person's demographic attributes against the known value sets
func (p *Person) Normalize() error {
	var err error
	if strings.TrimSpace(p.Name.First) == "" || strings.TrimSpace(p.Name.Last) == "" {
		return fmt.Errorf("%w: first and last name are required", errors.BadRequest)
	}
	if !IsValidDate(p.BirthDate) {
		return fmt.Errorf("%w: birth date must be formatted as YYYY-MM-DD", errors.BadRequest)
	}
	if p.Race, err = normalizeSingle("race", p.Race, Races); err != nil {
		return err
	}
	if p.Ethnicity, err = normalizeSingle("ethnicity", p.Ethnicity, Ethnicities); err != nil {
		return err
	}
	if p.GenderAssignedAtBirth, err = normalizeSingle("gender assigned at birth", p.GenderAssignedAtBirth, GendersAssignedAtBirth); err != nil {
		return err
	}
	if p.GenderIdentity, err = NormalizeValues("gender identity", p.GenderIdentity, GenderIdentities); err != nil {
		return err
	}
	if p.SexualOrientation, err = NormalizeValues("sexual orientation", p.SexualOrientation, SexualOrientations); err != nil {
		return err
	}
	if p.Role != "" {
		p.Role = Role(strings.ToUpper(string(p.Role)))
		if !Roles.Contains(p.Role) {
			return fmt.Errorf("%w: %q is not a valid role", errors.BadRequest, p.Role)
		}
	}
	if p.TestResultDelivery == "" {
		p.TestResultDelivery = DeliveryPreferenceNone
	}
	if !p.TestResultDelivery.IsValid() {
		return fmt.Errorf("%w: %q is not a valid delivery preference", errors.BadRequest, p.TestResultDelivery)
	}
	return nil
}
