package results

import (
	"fmt"

	"github.com/labnet/testledger/errors"
)

// AlreadyRemovedError is returned when the event was already removed or
// superseded by a correction
type AlreadyRemovedError struct {
	TestEventId string
}

func (e AlreadyRemovedError) Error() string {
	return fmt.Sprintf("test event %s was already removed and cannot be corrected", e.TestEventId)
}

func (e AlreadyRemovedError) Unwrap() error {
	return errors.Conflict
}

// OrphanedOrderError is returned when the order an event was produced from cannot be loaded
type OrphanedOrderError struct {
	TestEventId string
	OrderId     string
}

func (e OrphanedOrderError) Error() string {
	return fmt.Sprintf("could not load order %s of test event %s", e.OrderId, e.TestEventId)
}

func (e OrphanedOrderError) Unwrap() error {
	return errors.ConstraintViolation
}
