// Package facilities defines testing sites within an organization and the
// device/specimen types each site is configured to report.
package facilities

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/errors"
)

const CollectionName = "facilities"

// MaxDeviceTypesPerFacility limits the configured device types, to prevent abuse.
const MaxDeviceTypesPerFacility int = 100

var (
	ErrNotFound             = fmt.Errorf("facility %w", errors.NotFound)
	ErrDuplicateName        = fmt.Errorf("%w facility name", errors.Duplicate)
	ErrDeviceTypeNotAllowed = fmt.Errorf("%w: device type is not configured for the facility", errors.BadRequest)
	ErrTooManyDeviceTypes   = fmt.Errorf("%w: too many device types", errors.ConstraintViolation)
)

//go:generate mockgen --build_flags=--mod=mod -source=./facilities.go -destination=./test/mock_facilities.go -package test

type Service interface {
	Get(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, organizationId string) ([]*Facility, error)
	Create(ctx context.Context, facility *Facility) (*Facility, error)
	UpdateDeviceTypes(ctx context.Context, id string, update DeviceTypesUpdate) (*Facility, error)
}

type Repository interface {
	Get(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, organizationId string) ([]*Facility, error)
	Create(ctx context.Context, facility *Facility) (*Facility, error)
	UpdateDeviceTypes(ctx context.Context, id string, deviceTypes []string, defaultDeviceType *string) (*Facility, error)
}

type Provider struct {
	FirstName string            `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string            `bson:"lastName,omitempty" json:"lastName,omitempty"`
	NPI       string            `bson:"npi,omitempty" json:"npi,omitempty"`
	Phone     string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   addresses.Address `bson:"address,omitempty" json:"address,omitempty"`
}

type Facility struct {
	Id                *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrganizationId    primitive.ObjectID  `bson:"organizationId" json:"organizationId"`
	Name              string              `bson:"name" json:"name"`
	Address           addresses.Address   `bson:"address,omitempty" json:"address,omitempty"`
	Phone             string              `bson:"phone,omitempty" json:"phone,omitempty"`
	CliaNumber        string              `bson:"cliaNumber,omitempty" json:"cliaNumber,omitempty"`
	OrderingProvider  Provider            `bson:"orderingProvider,omitempty" json:"orderingProvider,omitempty"`
	DeviceTypes       []string            `bson:"deviceTypes" json:"deviceTypes"`
	DefaultDeviceType *string             `bson:"defaultDeviceType,omitempty" json:"defaultDeviceType,omitempty"`
	CreatedTime       time.Time           `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime       time.Time           `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
}

type DeviceTypesUpdate struct {
	DeviceTypes       []string
	DefaultDeviceType *string
}

func (f *Facility) HasDeviceType(deviceType string) bool {
	return slices.ContainsFunc(f.DeviceTypes, func(d string) bool {
		return strings.EqualFold(d, deviceType)
	})
}

func (f *Facility) AddDeviceType(deviceType string) {
	if deviceType == "" || f.HasDeviceType(deviceType) {
		return
	}
	f.DeviceTypes = append(f.DeviceTypes, deviceType)
}

// RemoveDeviceType removes the type from the configured set, clearing the
// default if it was the default.
func (f *Facility) RemoveDeviceType(deviceType string) {
	f.DeviceTypes = slices.DeleteFunc(f.DeviceTypes, func(d string) bool {
		return strings.EqualFold(d, deviceType)
	})
	if f.DefaultDeviceType != nil && strings.EqualFold(*f.DefaultDeviceType, deviceType) {
		f.DefaultDeviceType = nil
	}
}

// SetDefaultDeviceType makes the type the default, adding it to the configured set if needed.
func (f *Facility) SetDefaultDeviceType(deviceType *string) {
	if deviceType == nil || *deviceType == "" {
		f.DefaultDeviceType = nil
		return
	}
	f.AddDeviceType(*deviceType)
	f.DefaultDeviceType = deviceType
}

func (f *Facility) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: facility name is required", errors.BadRequest)
	}
	if f.OrganizationId.IsZero() {
		return fmt.Errorf("%w: facility organization is required", errors.BadRequest)
	}
	if len(f.DeviceTypes) > MaxDeviceTypesPerFacility {
		return ErrTooManyDeviceTypes
	}
	if f.DefaultDeviceType != nil && !f.HasDeviceType(*f.DefaultDeviceType) {
		return fmt.Errorf("%w: default device type %q is not a configured device type", errors.ConstraintViolation, *f.DefaultDeviceType)
	}
	return nil
}

func (f *Facility) String() string {
	return fmt.Sprintf("{Id:%s Name:%s}", f.Id.Hex(), f.Name)
}
