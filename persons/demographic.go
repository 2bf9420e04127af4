package persons

import (
	"fmt"
	"slices"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/labnet/testledger/errors"
)

const DateLayout = "2006-01-02"

func IsValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// Demographic is an optional combination of patient attributes. Unset fields
// do not constrain the match.
type Demographic struct {
	BornOnOrAfter             *string  `json:"bornOnOrAfter,omitempty"`
	BornOnOrBefore            *string  `json:"bornOnOrBefore,omitempty"`
	Role                      *Role    `json:"role,omitempty"`
	Race                      *string  `json:"race,omitempty"`
	Ethnicity                 *string  `json:"ethnicity,omitempty"`
	GenderIdentity            []string `json:"genderIdentity,omitempty"`
	GenderAssignedAtBirth     *string  `json:"genderAssignedAtBirth,omitempty"`
	SexualOrientation         []string `json:"sexualOrientation,omitempty"`
	ResidentCongregateSetting *bool    `json:"residentCongregateSetting,omitempty"`
	EmployedInHealthcare      *bool    `json:"employedInHealthcare,omitempty"`
}

func (d *Demographic) Validate() error {
	if d == nil {
		return nil
	}
	for _, date := range []*string{d.BornOnOrAfter, d.BornOnOrBefore} {
		if date != nil && !IsValidDate(*date) {
			return fmt.Errorf("%w: invalid birth date bound %q", errors.BadRequest, *date)
		}
	}
	if d.BornOnOrAfter != nil && d.BornOnOrBefore != nil && *d.BornOnOrAfter > *d.BornOnOrBefore {
		return fmt.Errorf("%w: birth date range is empty", errors.BadRequest)
	}
	return nil
}

// Selector translates the filter to a mongo query over persons. Gender and
// sexual orientation match when the person has any of the requested values.
func (d *Demographic) Selector() bson.M {
	selector := bson.M{}
	if d == nil {
		return selector
	}

	birthDate := bson.M{}
	if d.BornOnOrAfter != nil {
		birthDate["$gte"] = *d.BornOnOrAfter
	}
	if d.BornOnOrBefore != nil {
		birthDate["$lte"] = *d.BornOnOrBefore
	}
	if len(birthDate) > 0 {
		selector["birthDate"] = birthDate
	}
	if d.Role != nil {
		selector["role"] = string(d.role())
	}
	if d.Race != nil {
		selector["race"] = strings.ToLower(*d.Race)
	}
	if d.Ethnicity != nil {
		selector["ethnicity"] = strings.ToLower(*d.Ethnicity)
	}
	if genders := filterValues(d.GenderIdentity, GenderIdentities); len(genders) > 0 {
		selector["genderIdentity"] = bson.M{"$in": genders}
	}
	if d.GenderAssignedAtBirth != nil {
		selector["genderAssignedAtBirth"] = strings.ToLower(*d.GenderAssignedAtBirth)
	}
	if orientations := filterValues(d.SexualOrientation, SexualOrientations); len(orientations) > 0 {
		selector["sexualOrientation"] = bson.M{"$in": orientations}
	}
	if d.ResidentCongregateSetting != nil {
		selector["residentCongregateSetting"] = *d.ResidentCongregateSetting
	}
	if d.EmployedInHealthcare != nil {
		selector["employedInHealthcare"] = *d.EmployedInHealthcare
	}
	return selector
}

// Matches evaluates the filter against a single person with the same
// normalization as Selector
func (d *Demographic) Matches(p *Person) bool {
	if d == nil {
		return true
	}
	if d.BornOnOrAfter != nil && p.BirthDate < *d.BornOnOrAfter {
		return false
	}
	if d.BornOnOrBefore != nil && p.BirthDate > *d.BornOnOrBefore {
		return false
	}
	if d.Role != nil && d.role() != p.Role {
		return false
	}
	if d.Race != nil && strings.ToLower(*d.Race) != p.Race {
		return false
	}
	if d.Ethnicity != nil && strings.ToLower(*d.Ethnicity) != p.Ethnicity {
		return false
	}
	if genders := filterValues(d.GenderIdentity, GenderIdentities); len(genders) > 0 && !intersects(genders, p.GenderIdentity) {
		return false
	}
	if d.GenderAssignedAtBirth != nil && strings.ToLower(*d.GenderAssignedAtBirth) != p.GenderAssignedAtBirth {
		return false
	}
	if orientations := filterValues(d.SexualOrientation, SexualOrientations); len(orientations) > 0 && !intersects(orientations, p.SexualOrientation) {
		return false
	}
	if d.ResidentCongregateSetting != nil && (p.ResidentCongregateSetting == nil || *p.ResidentCongregateSetting != *d.ResidentCongregateSetting) {
		return false
	}
	if d.EmployedInHealthcare != nil && (p.EmployedInHealthcare == nil || *p.EmployedInHealthcare != *d.EmployedInHealthcare) {
		return false
	}
	return true
}

// Description renders the active predicates for display, e.g.
// "Born on or after 1990-01-01, race is black".
func (d *Demographic) Description() string {
	if d == nil {
		return "All patients"
	}

	var parts []string
	if d.BornOnOrAfter != nil {
		parts = append(parts, "born on or after "+*d.BornOnOrAfter)
	}
	if d.BornOnOrBefore != nil {
		parts = append(parts, "born on or before "+*d.BornOnOrBefore)
	}
	if d.Role != nil {
		parts = append(parts, "role is "+humanize(string(*d.Role)))
	}
	if d.Race != nil {
		parts = append(parts, "race is "+humanize(*d.Race))
	}
	if d.Ethnicity != nil {
		parts = append(parts, "ethnicity is "+humanize(*d.Ethnicity))
	}
	if len(d.GenderIdentity) > 0 {
		parts = append(parts, "gender is "+humanizeList(d.GenderIdentity))
	}
	if d.GenderAssignedAtBirth != nil {
		parts = append(parts, "gender assigned at birth is "+humanize(*d.GenderAssignedAtBirth))
	}
	if len(d.SexualOrientation) > 0 {
		parts = append(parts, "sexual orientation is "+humanizeList(d.SexualOrientation))
	}
	if d.ResidentCongregateSetting != nil {
		parts = append(parts, describeFlag("resides", "in a congregate setting", *d.ResidentCongregateSetting))
	}
	if d.EmployedInHealthcare != nil {
		parts = append(parts, describeFlag("employed", "in healthcare", *d.EmployedInHealthcare))
	}
	if len(parts) == 0 {
		return "All patients"
	}

	description := strings.Join(parts, ", ")
	return strings.ToUpper(description[:1]) + description[1:]
}

func humanize(value string) string {
	return cases.Lower(language.English).String(strings.ReplaceAll(value, "_", " "))
}

func humanizeList(values []string) string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	for i, v := range sorted {
		sorted[i] = humanize(v)
	}
	return strings.Join(sorted, " or ")
}

func describeFlag(verb, object string, value bool) string {
	if value {
		return verb + " " + object
	}
	return "not " + verb + " " + object
}

func (d *Demographic) role() Role {
	return Role(strings.ToUpper(string(*d.Role)))
}

// filterValues lowercases known values the way NormalizeValues stores them.
// Custom values are stored verbatim and are matched verbatim.
func filterValues(values []string, known mapset.Set[string]) []string {
	var result []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if known.Contains(strings.ToLower(v)) {
			v = strings.ToLower(v)
		}
		if !slices.Contains(result, v) {
			result = append(result, v)
		}
	}
	return result
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
