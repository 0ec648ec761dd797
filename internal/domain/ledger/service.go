// Package ledger provides the stock ledger service.
package ledger

import (
	"context"
	"fmt"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/pkg/logger"
)

// Service provides business operations for the stock ledger.
// Adjustments are expected to run inside the caller's transaction
// (document mutators open one around the whole mutation).
type Service struct {
	repo Repository
}

// NewService creates a new stock ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Adjust adds delta to the balance at key. The balance is allowed to go
// negative (sales are never blocked on bookkeeping lag); a negative result
// is logged so the UI layer can surface a warning.
func (s *Service) Adjust(ctx context.Context, key Key, delta types.Quantity) (StockEntry, error) {
	if err := key.Validate(); err != nil {
		return StockEntry{}, err
	}
	if delta.IsZero() {
		return s.repo.GetEntry(ctx, key)
	}

	entry, err := s.repo.Adjust(ctx, key, delta)
	if err != nil {
		return StockEntry{}, fmt.Errorf("adjust stock at %s: %w", key, err)
	}

	if entry.Quantity.IsNegative() {
		logger.Warn(ctx, "stock balance went negative",
			"material_id", key.MaterialID,
			"location", string(key.Location),
			"quantity", entry.Quantity.String(),
		)
	}

	return entry, nil
}

// GetQuantity returns the current balance at key (zero when never adjusted).
func (s *Service) GetQuantity(ctx context.Context, key Key) (types.Quantity, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}
	entry, err := s.repo.GetEntry(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("get stock at %s: %w", key, err)
	}
	return entry.Quantity, nil
}

// ListStock returns balances with quantity > 0 for display.
func (s *Service) ListStock(ctx context.Context, tenantID id.ID) ([]StockEntry, error) {
	return s.repo.ListByTenant(ctx, tenantID, BalanceFilter{PositiveOnly: true})
}

// ListAvailableStock returns positive balances for sale/dismantling source pickers.
// Same filter as ListStock; kept separate so the two screens can diverge.
func (s *Service) ListAvailableStock(ctx context.Context, tenantID id.ID) ([]StockEntry, error) {
	return s.repo.ListByTenant(ctx, tenantID, BalanceFilter{PositiveOnly: true})
}

// ListAllStock returns every balance including zero and negative rows.
func (s *Service) ListAllStock(ctx context.Context, tenantID id.ID) ([]StockEntry, error) {
	return s.repo.ListByTenant(ctx, tenantID, BalanceFilter{})
}
