// Package ledger_repo provides the PostgreSQL implementation of the stock
// ledger repository.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/ledger"
	"yardbook/internal/infrastructure/storage/postgres"
)

const stockEntriesTable = "stock_entries"

// Compile-time check that StockRepo implements ledger.Repository.
var _ ledger.Repository = (*StockRepo)(nil)

// StockRepo implements ledger.Repository.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock ledger repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// The upsert targets one of two partial unique indexes depending on whether
// the key carries a contract. ON CONFLICT cannot match a NULL column with an
// equality arbiter, so the nil-contract branch uses the index predicated on
// contract_id IS NULL. Both branches add the delta server-side in a single
// statement, which keeps concurrent adjustments to the same key lossless.
const adjustNilContractSQL = `
	INSERT INTO stock_entries (tenant_id, material_id, location_type, contract_id, quantity, updated_at)
	VALUES ($1, $2, $3, NULL, $4, now())
	ON CONFLICT (tenant_id, material_id, location_type) WHERE contract_id IS NULL
	DO UPDATE SET quantity = stock_entries.quantity + EXCLUDED.quantity, updated_at = now()
	RETURNING tenant_id, material_id, location_type, contract_id, quantity, updated_at
`

const adjustContractSQL = `
	INSERT INTO stock_entries (tenant_id, material_id, location_type, contract_id, quantity, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (tenant_id, material_id, location_type, contract_id) WHERE contract_id IS NOT NULL
	DO UPDATE SET quantity = stock_entries.quantity + EXCLUDED.quantity, updated_at = now()
	RETURNING tenant_id, material_id, location_type, contract_id, quantity, updated_at
`

// Adjust atomically adds delta to the balance at key, creating the entry on
// first touch. Returns the post-adjustment entry.
func (r *StockRepo) Adjust(ctx context.Context, key ledger.Key, delta types.Quantity) (ledger.StockEntry, error) {
	var entry ledger.StockEntry
	querier := r.txm.GetQuerier(ctx)

	var err error
	if key.ContractID == nil {
		err = pgxscan.Get(ctx, querier, &entry, adjustNilContractSQL,
			key.TenantID, key.MaterialID, key.Location, delta.Int64Scaled())
	} else {
		err = pgxscan.Get(ctx, querier, &entry, adjustContractSQL,
			key.TenantID, key.MaterialID, key.Location, *key.ContractID, delta.Int64Scaled())
	}
	if err != nil {
		return entry, fmt.Errorf("adjust stock %s: %w", key, err)
	}

	return entry, nil
}

// GetEntry returns the balance at key, or a zero-quantity entry when the key
// has never been adjusted.
func (r *StockRepo) GetEntry(ctx context.Context, key ledger.Key) (ledger.StockEntry, error) {
	q := r.builder.Select(
		"tenant_id", "material_id", "location_type", "contract_id",
		"quantity", "updated_at",
	).From(stockEntriesTable).
		Where(squirrel.Eq{
			"tenant_id":     key.TenantID,
			"material_id":   key.MaterialID,
			"location_type": key.Location,
		}).Limit(1)

	if key.ContractID == nil {
		q = q.Where("contract_id IS NULL")
	} else {
		q = q.Where(squirrel.Eq{"contract_id": *key.ContractID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger.StockEntry{}, fmt.Errorf("build query: %w", err)
	}

	var entry ledger.StockEntry
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.StockEntry{
				TenantID:   key.TenantID,
				MaterialID: key.MaterialID,
				Location:   key.Location,
				ContractID: key.ContractID,
				Quantity:   0,
			}, nil
		}
		return entry, fmt.Errorf("get stock %s: %w", key, err)
	}

	return entry, nil
}

// ListByTenant returns balances for a tenant.
func (r *StockRepo) ListByTenant(ctx context.Context, tenantID id.ID, filter ledger.BalanceFilter) ([]ledger.StockEntry, error) {
	q := r.builder.Select(
		"tenant_id", "material_id", "location_type", "contract_id",
		"quantity", "updated_at",
	).From(stockEntriesTable).
		Where(squirrel.Eq{"tenant_id": tenantID})

	if len(filter.MaterialIDs) > 0 {
		q = q.Where(squirrel.Eq{"material_id": filter.MaterialIDs})
	}
	if filter.Location != nil {
		q = q.Where(squirrel.Eq{"location_type": *filter.Location})
	}
	if filter.PositiveOnly {
		q = q.Where(squirrel.Gt{"quantity": int64(0)})
	}

	q = q.OrderBy("material_id", "location_type")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []ledger.StockEntry
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select stock: %w", err)
	}

	return entries, nil
}
