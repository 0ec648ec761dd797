package material

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Service provides read access to the material catalog.
type Service struct {
	repo Repository
}

// NewService creates a new material catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a material.
func (s *Service) GetByID(ctx context.Context, materialID id.ID) (*Material, error) {
	m, err := s.repo.GetByID(ctx, materialID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("material", materialID.String())
		}
		return nil, err
	}
	return m, nil
}

// List retrieves materials with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Material], error) {
	return s.repo.List(ctx, tenantID, filter)
}
