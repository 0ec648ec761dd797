package contract

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Service provides read access to the contract catalog.
type Service struct {
	repo Repository
}

// NewService creates a new contract catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByID retrieves a contract.
func (s *Service) GetByID(ctx context.Context, contractID id.ID) (*Contract, error) {
	c, err := s.repo.GetByID(ctx, contractID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("contract", contractID.String())
		}
		return nil, err
	}
	return c, nil
}

// List retrieves contracts with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Contract], error) {
	return s.repo.List(ctx, tenantID, filter)
}
