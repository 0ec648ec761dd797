package cash

import (
	"context"
	"time"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
)

// Repository defines storage operations for the cash subledger.
type Repository interface {
	// Registers

	CreateRegister(ctx context.Context, reg *CashRegister) error
	GetRegister(ctx context.Context, registerID id.ID) (*CashRegister, error)
	ListRegisters(ctx context.Context, tenantID id.ID) ([]*CashRegister, error)

	// Transactions

	CreateTransaction(ctx context.Context, tx *CashTransaction) error

	// NetBefore returns the folded transaction stream strictly before day:
	// sum(income) - sum(expense) over all transactions with date < day.
	// Zero-transaction gaps need no special casing; the aggregate simply
	// carries the balance forward.
	NetBefore(ctx context.Context, registerID id.ID, day time.Time) (types.Money, error)

	// DayTotals returns income and expense sums for transactions with
	// day <= date < day+24h.
	DayTotals(ctx context.Context, registerID id.ID, day time.Time) (income, expense types.Money, err error)

	// Expenses

	CreateExpense(ctx context.Context, rec *ExpenseRecord) error
}
