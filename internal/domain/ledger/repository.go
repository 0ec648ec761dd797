// Package ledger provides the stock ledger repository contract.
package ledger

import (
	"context"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
)

// Repository defines storage operations for the stock ledger.
type Repository interface {
	// Adjust atomically adds delta to the balance at key, creating the entry
	// with quantity = delta when it does not exist yet. Implementations must
	// use a single upsert-with-increment statement so concurrent adjustments
	// to the same key cannot lose updates.
	// Returns the entry with the post-adjustment quantity.
	Adjust(ctx context.Context, key Key, delta types.Quantity) (StockEntry, error)

	// GetEntry returns the balance at key, or a zero-quantity entry when the
	// key has never been adjusted.
	GetEntry(ctx context.Context, key Key) (StockEntry, error)

	// ListByTenant returns balances for a tenant.
	ListByTenant(ctx context.Context, tenantID id.ID, filter BalanceFilter) ([]StockEntry, error)
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	MaterialIDs  []id.ID
	Location     *LocationType
	PositiveOnly bool
}
