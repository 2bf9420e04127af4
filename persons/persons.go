package persons

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/store"
)

const CollectionName = "persons"

var ErrNotFound = fmt.Errorf("patient %w", errors.NotFound)
var ErrDuplicateLookupId = fmt.Errorf("%w patient lookup id", errors.Duplicate)

//go:generate mockgen --build_flags=--mod=mod -source=./persons.go -destination=./test/mock_persons.go -package test

type Service interface {
	Get(ctx context.Context, id string) (*Person, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Person, error)
	Create(ctx context.Context, person *Person) (*Person, error)
	Update(ctx context.Context, id string, update Update) (*Person, error)
	UpdateDeliveryPreference(ctx context.Context, id string, preference DeliveryPreference) (*Person, error)
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type Repository interface {
	Get(ctx context.Context, id string) (*Person, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Person, error)
	ListIds(ctx context.Context, filter *Filter) ([]primitive.ObjectID, error)
	Create(ctx context.Context, person *Person) (*Person, error)
	Update(ctx context.Context, id string, update Update) (*Person, error)
	UpdateDeliveryPreference(ctx context.Context, id string, preference DeliveryPreference) (*Person, error)
	Delete(ctx context.Context, id string, deletedBy *string) error
}

type DeliveryPreference string

const (
	DeliveryPreferenceNone  DeliveryPreference = "NONE"
	DeliveryPreferenceSMS   DeliveryPreference = "SMS"
	DeliveryPreferenceEmail DeliveryPreference = "EMAIL"
	DeliveryPreferenceAll   DeliveryPreference = "ALL"
)

func (d DeliveryPreference) IsValid() bool {
	switch d {
	case DeliveryPreferenceNone, DeliveryPreferenceSMS, DeliveryPreferenceEmail, DeliveryPreferenceAll:
		return true
	}
	return false
}

// WantsDelivery reports whether results should be pushed to the patient
func (d DeliveryPreference) WantsDelivery() bool {
	return d == DeliveryPreferenceSMS || d == DeliveryPreferenceEmail || d == DeliveryPreferenceAll
}

type Role string

const (
	RoleStaff    Role = "STAFF"
	RoleResident Role = "RESIDENT"
	RoleStudent  Role = "STUDENT"
	RoleVisitor  Role = "VISITOR"
	RoleUnknown  Role = "UNKNOWN"
)

type Name struct {
	First  string `bson:"first" json:"first"`
	Middle string `bson:"middle,omitempty" json:"middle,omitempty"`
	Last   string `bson:"last" json:"last"`
	Suffix string `bson:"suffix,omitempty" json:"suffix,omitempty"`
}

func (n Name) String() string {
	name := n.First
	if n.Middle != "" {
		name += " " + n.Middle
	}
	name += " " + n.Last
	if n.Suffix != "" {
		name += " " + n.Suffix
	}
	return name
}

type PhoneNumber struct {
	Type   string `bson:"type,omitempty" json:"type,omitempty"`
	Number string `bson:"number" json:"number"`
}

type Person struct {
	Id                        *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrganizationId            primitive.ObjectID  `bson:"organizationId" json:"organizationId"`
	FacilityId                *primitive.ObjectID `bson:"facilityId,omitempty" json:"facilityId,omitempty"`
	LookupId                  *string             `bson:"lookupId,omitempty" json:"lookupId,omitempty"`
	Name                      Name                `bson:"name" json:"name"`
	BirthDate                 string              `bson:"birthDate" json:"birthDate"`
	Address                   addresses.Address   `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumbers              []PhoneNumber       `bson:"phoneNumbers,omitempty" json:"phoneNumbers,omitempty"`
	Emails                    []string            `bson:"emails,omitempty" json:"emails,omitempty"`
	Role                      Role                `bson:"role,omitempty" json:"role,omitempty"`
	Race                      string              `bson:"race,omitempty" json:"race,omitempty"`
	Ethnicity                 string              `bson:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	TribalAffiliation         string              `bson:"tribalAffiliation,omitempty" json:"tribalAffiliation,omitempty"`
	GenderIdentity            []string            `bson:"genderIdentity,omitempty" json:"genderIdentity,omitempty"`
	GenderAssignedAtBirth     string              `bson:"genderAssignedAtBirth,omitempty" json:"genderAssignedAtBirth,omitempty"`
	SexualOrientation         []string            `bson:"sexualOrientation,omitempty" json:"sexualOrientation,omitempty"`
	ResidentCongregateSetting *bool               `bson:"residentCongregateSetting,omitempty" json:"residentCongregateSetting,omitempty"`
	EmployedInHealthcare      *bool               `bson:"employedInHealthcare,omitempty" json:"employedInHealthcare,omitempty"`
	PreferredLanguage         string              `bson:"preferredLanguage,omitempty" json:"preferredLanguage,omitempty"`
	TestResultDelivery        DeliveryPreference  `bson:"testResultDelivery,omitempty" json:"testResultDelivery,omitempty"`
	CreatedTime               time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime               time.Time           `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
	DeletedTime               *time.Time          `bson:"deletedTime,omitempty" json:"-"`
}

// IsVisibleAt reports whether the patient may be tested at the facility. A
// patient without a facility is visible at every facility of the organization.
func (p *Person) IsVisibleAt(facilityId primitive.ObjectID) bool {
	return p.FacilityId == nil || *p.FacilityId == facilityId
}

func (p *Person) PrimaryPhone() string {
	if len(p.PhoneNumbers) == 0 {
		return ""
	}
	return p.PhoneNumbers[0].Number
}

func (p *Person) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

type Update struct {
	Name                      *Name
	BirthDate                 *string
	Address                   *addresses.Address
	PhoneNumbers              *[]PhoneNumber
	Emails                    *[]string
	Role                      *Role
	Race                      *string
	Ethnicity                 *string
	GenderIdentity            *[]string
	GenderAssignedAtBirth     *string
	SexualOrientation         *[]string
	ResidentCongregateSetting *bool
	EmployedInHealthcare      *bool
}

type Filter struct {
	OrganizationId primitive.ObjectID
	// VisibleAtFacilityId restricts results to patients bound to the facility or to no facility
	VisibleAtFacilityId *primitive.ObjectID
	Ids                 []primitive.ObjectID
	Demographic         *Demographic
}
