package partner

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Service provides read access to the partner catalog.
type Service struct {
	repo Repository
}

// NewService creates a new partner catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a partner.
func (s *Service) GetByID(ctx context.Context, partnerID id.ID) (*Partner, error) {
	p, err := s.repo.GetByID(ctx, partnerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("partner", partnerID.String())
		}
		return nil, err
	}
	return p, nil
}

// List retrieves partners with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Partner], error) {
	return s.repo.List(ctx, tenantID, filter)
}
