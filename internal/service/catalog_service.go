package service

import (
	"context"
	"fmt"

	"autocare/internal/db"
	"autocare/internal/repository"
)

// CatalogService reads the service catalog. The catalog is seeded out of
// band and never mutated by end users.
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListActive(ctx context.Context) ([]db.Service, error) {
	services, err := s.store.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return services, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*db.Service, error) {
	return s.store.GetServiceByID(ctx, id)
}
