package cash_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"yardbook/internal/core/id"
	"yardbook/internal/domain/cash"
	"yardbook/internal/infrastructure/storage/postgres"
)

// CreateExpense inserts an expense record.
func (r *CashRepo) CreateExpense(ctx context.Context, rec *cash.ExpenseRecord) error {
	q := r.builder.Insert(expenseRecordsTable).
		SetMap(postgres.StructToMap(rec))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expense record: %w", err)
	}

	return nil
}

var expenseColumns = []string{
	"id", "tenant_id", "date", "name", "notes", "amount", "kind",
	"payment_method", "attribution_type", "attribution_id", "category_id",
	"source_type", "source_document_id", "created_at",
}

// SearchExpenses returns the coarse candidate set for the legacy token
// reconciliation: any record whose name or notes contains the token,
// case-insensitive. The exact layout matching happens in the domain layer.
func (r *CashRepo) SearchExpenses(ctx context.Context, tenantID id.ID, token string) ([]cash.ExpenseRecord, error) {
	pattern := "%" + token + "%"
	q := r.builder.Select(expenseColumns...).
		From(expenseRecordsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"notes": pattern},
		}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []cash.ExpenseRecord
	if err := pgxscan.Select(ctx, r.querier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("search expenses: %w", err)
	}

	return records, nil
}

// ListBySourceDocument returns records explicitly linked to a document.
func (r *CashRepo) ListBySourceDocument(ctx context.Context, tenantID, docID id.ID) ([]cash.ExpenseRecord, error) {
	q := r.builder.Select(expenseColumns...).
		From(expenseRecordsTable).
		Where(squirrel.Eq{
			"tenant_id":          tenantID,
			"source_document_id": docID,
		}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []cash.ExpenseRecord
	if err := pgxscan.Select(ctx, r.querier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list by source document: %w", err)
	}

	return records, nil
}
