package cash_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/cash"
	"yardbook/internal/infrastructure/storage/postgres"
)

// CreateTransaction inserts a register movement.
func (r *CashRepo) CreateTransaction(ctx context.Context, tx *cash.CashTransaction) error {
	q := r.builder.Insert(cashTransactionsTable).
		SetMap(postgres.StructToMap(tx))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

// The fold and the day totals are single aggregate queries rather than the
// legacy day-by-day recursion: a day with no transactions contributes
// nothing to the sum, which is exactly "carry the opening balance forward".
const netBeforeSQL = `
	SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
	FROM cash_transactions
	WHERE register_id = $1 AND date < $2
`

const dayTotalsSQL = `
	SELECT
		COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
		COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
	FROM cash_transactions
	WHERE register_id = $1 AND date >= $2 AND date < $3
`

// NetBefore returns sum(income) - sum(expense) strictly before day.
func (r *CashRepo) NetBefore(ctx context.Context, registerID id.ID, day time.Time) (types.Money, error) {
	var net decimal.Decimal
	err := r.querier(ctx).QueryRow(ctx, netBeforeSQL, registerID, day).Scan(&net)
	if err != nil {
		return types.Zero(), fmt.Errorf("net before: %w", err)
	}
	return net, nil
}

// DayTotals returns income and expense sums for one calendar day.
func (r *CashRepo) DayTotals(ctx context.Context, registerID id.ID, day time.Time) (types.Money, types.Money, error) {
	var income, expense decimal.Decimal
	err := r.querier(ctx).QueryRow(ctx, dayTotalsSQL, registerID, day, day.Add(24*time.Hour)).
		Scan(&income, &expense)
	if err != nil {
		return types.Zero(), types.Zero(), fmt.Errorf("day totals: %w", err)
	}
	return income, expense, nil
}
