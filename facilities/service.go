package facilities

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

type service struct {
	repository Repository
	logger     *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repository Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repository: repository,
		logger:     logger,
	}
}

func (s *service) Get(ctx context.Context, id string) (*Facility, error) {
	return s.repository.Get(ctx, id)
}

func (s *service) List(ctx context.Context, organizationId string) ([]*Facility, error) {
	return s.repository.List(ctx, organizationId)
}

func (s *service) Create(ctx context.Context, facility *Facility) (*Facility, error) {
	deviceTypes := facility.DeviceTypes
	facility.DeviceTypes = nil
	for _, d := range deviceTypes {
		facility.AddDeviceType(d)
	}
	facility.SetDefaultDeviceType(facility.DefaultDeviceType)
	if err := facility.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, facility)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("facility created", "facilityId", created.Id.Hex(), "organizationId", created.OrganizationId.Hex())
	return created, nil
}

// UpdateDeviceTypes replaces the configured set. A default that is no longer a
// member of the set is cleared and a default outside the set is added to it.
func (s *service) UpdateDeviceTypes(ctx context.Context, id string, update DeviceTypesUpdate) (*Facility, error) {
	facility, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, existing := range slices.Clone(facility.DeviceTypes) {
		if !slices.Contains(update.DeviceTypes, existing) {
			facility.RemoveDeviceType(existing)
		}
	}
	for _, d := range update.DeviceTypes {
		facility.AddDeviceType(d)
	}
	if update.DefaultDeviceType != nil {
		facility.SetDefaultDeviceType(update.DefaultDeviceType)
	}
	if err := facility.Validate(); err != nil {
		return nil, err
	}

	return s.repository.UpdateDeviceTypes(ctx, id, facility.DeviceTypes, facility.DefaultDeviceType)
}
