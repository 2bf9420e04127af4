package service

import (
	"context"
	"fmt"

	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"github.com/labnet/testledger/addresses"
	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/persons"
	"github.com/labnet/testledger/store"
)

type service struct {
	repository persons.Repository
	validator  addresses.Validator
	logger     *zap.SugaredLogger
}

var _ persons.Service = &service{}

func NewService(repository persons.Repository, validator addresses.Validator, logger *zap.SugaredLogger) persons.Service {
	return &service{
		repository: repository,
		validator:  validator,
		logger:     logger,
	}
}

func (s *service) Get(ctx context.Context, id string) (*persons.Person, error) {
	return s.repository.Get(ctx, id)
}

func (s *service) List(ctx context.Context, filter *persons.Filter, pagination store.Pagination) ([]*persons.Person, error) {
	if filter != nil {
		if err := filter.Demographic.Validate(); err != nil {
			return nil, err
		}
	}
	return s.repository.List(ctx, filter, pagination)
}

func (s *service) Create(ctx context.Context, person *persons.Person) (*persons.Person, error) {
	if person.OrganizationId.IsZero() {
		return nil, fmt.Errorf("%w: patient organization is required", errors.BadRequest)
	}
	if err := person.Normalize(); err != nil {
		return nil, err
	}
	if !person.Address.IsEmpty() {
		address, err := s.validator.Validate(ctx, person.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
		}
		person.Address = address
	}

	created, err := s.repository.Create(ctx, person)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("patient created", "patientId", created.Id.Hex(), "organizationId", created.OrganizationId.Hex())
	return created, nil
}

// Update applies the update to a copy of the current record and validates the
// result before persisting the normalized values.
func (s *service) Update(ctx context.Context, id string, update persons.Update) (*persons.Person, error) {
	current, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := deepcopy.Copy(*current).(persons.Person)
	applyUpdate(&candidate, update)
	if err := candidate.Normalize(); err != nil {
		return nil, err
	}
	if update.Address != nil && !candidate.Address.IsEmpty() {
		address, err := s.validator.Validate(ctx, candidate.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.BadRequest, err)
		}
		candidate.Address = address
		update.Address = &address
	}

	return s.repository.Update(ctx, id, normalizedUpdate(candidate, update))
}

func (s *service) UpdateDeliveryPreference(ctx context.Context, id string, preference persons.DeliveryPreference) (*persons.Person, error) {
	if !preference.IsValid() {
		return nil, fmt.Errorf("%w: %q is not a valid delivery preference", errors.BadRequest, preference)
	}
	return s.repository.UpdateDeliveryPreference(ctx, id, preference)
}

func (s *service) Delete(ctx context.Context, id string, deletedBy *string) error {
	if err := s.repository.Delete(ctx, id, deletedBy); err != nil {
		return err
	}
	s.logger.Infow("patient deleted", "patientId", id)
	return nil
}

func applyUpdate(p *persons.Person, u persons.Update) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.BirthDate != nil {
		p.BirthDate = *u.BirthDate
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.PhoneNumbers != nil {
		p.PhoneNumbers = *u.PhoneNumbers
	}
	if u.Emails != nil {
		p.Emails = *u.Emails
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.Race != nil {
		p.Race = *u.Race
	}
	if u.Ethnicity != nil {
		p.Ethnicity = *u.Ethnicity
	}
	if u.GenderIdentity != nil {
		p.GenderIdentity = *u.GenderIdentity
	}
	if u.GenderAssignedAtBirth != nil {
		p.GenderAssignedAtBirth = *u.GenderAssignedAtBirth
	}
	if u.SexualOrientation != nil {
		p.SexualOrientation = *u.SexualOrientation
	}
	if u.ResidentCongregateSetting != nil {
		p.ResidentCongregateSetting = u.ResidentCongregateSetting
	}
	if u.EmployedInHealthcare != nil {
		p.EmployedInHealthcare = u.EmployedInHealthcare
	}
}

// normalizedUpdate carries the normalized values back into the fields that were updated
func normalizedUpdate(p persons.Person, u persons.Update) persons.Update {
	if u.Role != nil {
		u.Role = &p.Role
	}
	if u.Race != nil {
		u.Race = &p.Race
	}
	if u.Ethnicity != nil {
		u.Ethnicity = &p.Ethnicity
	}
	if u.GenderIdentity != nil {
		u.GenderIdentity = &p.GenderIdentity
	}
	if u.GenderAssignedAtBirth != nil {
		u.GenderAssignedAtBirth = &p.GenderAssignedAtBirth
	}
	if u.SexualOrientation != nil {
		u.SexualOrientation = &p.SexualOrientation
	}
	return u
}
