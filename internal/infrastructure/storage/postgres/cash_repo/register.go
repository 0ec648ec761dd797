// Package cash_repo provides the PostgreSQL implementation of the cash
// subledger repository. CashRepo also serves the reconciliation read side,
// since both work the same expense_records table.
package cash_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/tenant"
	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/reconcile"
	"yardbook/internal/infrastructure/storage/postgres"
)

const (
	cashRegistersTable    = "cash_registers"
	cashTransactionsTable = "cash_transactions"
	expenseRecordsTable   = "expense_records"
)

// Compile-time checks.
var (
	_ cash.Repository      = (*CashRepo)(nil)
	_ reconcile.Repository = (*CashRepo)(nil)
)

// CashRepo implements cash.Repository and reconcile.Repository.
type CashRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewCashRepo creates a new cash subledger repository.
func NewCashRepo(txm *postgres.TxManager) *CashRepo {
	return &CashRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CashRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// CreateRegister inserts a cash register.
func (r *CashRepo) CreateRegister(ctx context.Context, reg *cash.CashRegister) error {
	q := r.builder.Insert(cashRegistersTable).
		SetMap(postgres.StructToMap(reg))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert register: %w", err)
	}

	return nil
}

func (r *CashRepo) getRegisterQuery(ctx context.Context, registerID id.ID) squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "tenant_id", "deletion_mark", "version",
		"name", "type", "initial_balance",
	).From(cashRegistersTable).
		Where(squirrel.Eq{"id": registerID}).
		Where(squirrel.Eq{"tenant_id": tenant.GetTenantID(ctx)}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)
}

// GetRegister retrieves a register by ID, scoped to the calling tenant.
func (r *CashRepo) GetRegister(ctx context.Context, registerID id.ID) (*cash.CashRegister, error) {
	q := r.getRegisterQuery(ctx, registerID)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var reg cash.CashRegister
	if err := pgxscan.Get(ctx, r.querier(ctx), &reg, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(cashRegistersTable, registerID.String())
		}
		return nil, fmt.Errorf("get register: %w", err)
	}

	return &reg, nil
}

// ListRegisters returns a tenant's registers, name order.
func (r *CashRepo) ListRegisters(ctx context.Context, tenantID id.ID) ([]*cash.CashRegister, error) {
	q := r.builder.Select(
		"id", "tenant_id", "deletion_mark", "version",
		"name", "type", "initial_balance",
	).From(cashRegistersTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var registers []*cash.CashRegister
	if err := pgxscan.Select(ctx, r.querier(ctx), &registers, sql, args...); err != nil {
		return nil, fmt.Errorf("select registers: %w", err)
	}

	return registers, nil
}
