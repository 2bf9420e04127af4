package orders

import (
	"fmt"

	"github.com/labnet/testledger/errors"
)

// DuplicateOrderError is returned when the patient already has a pending order
type DuplicateOrderError struct {
	PatientId string
	OrderId   string
}

func (e DuplicateOrderError) Error() string {
	if e.OrderId == "" {
		return fmt.Sprintf("cannot create multiple queue entries for patient %s", e.PatientId)
	}
	return fmt.Sprintf("cannot create multiple queue entries for patient %s: order %s is pending", e.PatientId, e.OrderId)
}

func (e DuplicateOrderError) Unwrap() error {
	return errors.Duplicate
}

// NoActiveOrderError is returned when the patient has no pending order
type NoActiveOrderError struct {
	PatientId string
	OrderId   string
}

func (e NoActiveOrderError) Error() string {
	if e.OrderId != "" {
		return fmt.Sprintf("order %s for patient %s is not pending", e.OrderId, e.PatientId)
	}
	return fmt.Sprintf("no pending order for patient %s", e.PatientId)
}

func (e NoActiveOrderError) Unwrap() error {
	return errors.NotFound
}

// CrossScopeError is returned when the patient cannot be tested at the facility
// because they belong to another organization or are bound to another facility
type CrossScopeError struct {
	PatientId  string
	FacilityId string
}

func (e CrossScopeError) Error() string {
	return fmt.Sprintf("patient %s cannot be tested at facility %s", e.PatientId, e.FacilityId)
}

func (e CrossScopeError) Unwrap() error {
	return errors.ConstraintViolation
}

// StaleCorrectionError is returned when an order no longer points at the event
// a correction was computed against
type StaleCorrectionError struct {
	OrderId     string
	TestEventId string
}

func (e StaleCorrectionError) Error() string {
	return fmt.Sprintf("order %s no longer references event %s", e.OrderId, e.TestEventId)
}

func (e StaleCorrectionError) Unwrap() error {
	return errors.Conflict
}
