package organizations

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"
)

const cacheSize = 1024

type service struct {
	repository Repository
	logger     *zap.SugaredLogger

	mu    sync.Mutex
	cache *lru.LRU
}

var _ Service = &service{}

// NewService returns a service which caches organization lookups by id. Soft
// deletion evicts the cached entry.
func NewService(repository Repository, logger *zap.SugaredLogger) (Service, error) {
	cache, err := lru.NewLRU(cacheSize, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create organizations cache: %w", err)
	}

	return &service{
		repository: repository,
		logger:     logger,
		cache:      cache,
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Organization, error) {
	if organization, ok := s.getCached(id); ok {
		return organization, nil
	}

	organization, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.addCached(organization)
	return organization, nil
}

func (s *service) GetByExternalId(ctx context.Context, externalId string) (*Organization, error) {
	return s.repository.GetByExternalId(ctx, externalId)
}

func (s *service) Create(ctx context.Context, organization *Organization) (*Organization, error) {
	created, err := s.repository.Create(ctx, organization)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("organization created", "organizationId", created.Id.Hex(), "externalId", created.ExternalId)
	return created, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repository.Delete(ctx, id)
	s.mu.Lock()
	s.cache.Remove(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Infow("organization deleted", "organizationId", id, "externalId", deleted.ExternalId)
	return nil
}

func (s *service) getCached(id string) (*Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	organization, ok := value.(*Organization)
	return organization, ok
}

func (s *service) addCached(organization *Organization) {
	if organization == nil || organization.Id == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(organization.Id.Hex(), organization)
}
