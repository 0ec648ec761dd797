package cash

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/pkg/logger"
)

// Service provides business operations for the cash subledger.
type Service struct {
	repo Repository
}

// NewService creates a new cash subledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordDocumentPayment records the cash side effect of a document:
// one ExpenseRecord, plus one register movement when a register was selected.
// A failed register lookup leaves PaymentMethod empty and skips the movement
// instead of aborting the whole mutation.
func (s *Service) RecordDocumentPayment(ctx context.Context, p DocumentPayment) error {
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}
	if id.IsNil(p.SourceDocumentID) {
		return apperror.NewValidation("source document is required").
			WithDetail("field", "sourceDocumentId")
	}

	var reg *CashRegister
	if p.RegisterID != nil {
		found, err := s.repo.GetRegister(ctx, *p.RegisterID)
		if err != nil {
			if !apperror.IsNotFound(err) {
				return fmt.Errorf("get register: %w", err)
			}
			logger.Warn(ctx, "payment register not found, recording without method",
				"register_id", *p.RegisterID,
				"document_id", p.SourceDocumentID,
			)
		} else {
			reg = found
		}
	}

	docID := p.SourceDocumentID
	rec := &ExpenseRecord{
		ID:               id.New(),
		TenantID:         p.TenantID,
		Date:             p.Date,
		Name:             expenseName(p.Reference),
		Amount:           p.Amount,
		Kind:             p.Kind,
		AttributionType:  p.AttributionType,
		AttributionID:    p.AttributionID,
		SourceType:       p.SourceType,
		SourceDocumentID: &docID,
		CreatedAt:        time.Now().UTC(),
	}
	if reg != nil {
		rec.PaymentMethod = string(reg.Type)
	}

	if err := s.repo.CreateExpense(ctx, rec); err != nil {
		return fmt.Errorf("create expense record: %w", err)
	}

	if reg != nil {
		mov := &CashTransaction{
			ID:               id.New(),
			TenantID:         p.TenantID,
			RegisterID:       reg.ID,
			Date:             p.Date,
			Type:             movementType(p.Kind),
			Amount:           p.Amount,
			SourceType:       p.SourceType,
			SourceDocumentID: &docID,
			CreatedAt:        time.Now().UTC(),
		}
		if err := s.repo.CreateTransaction(ctx, mov); err != nil {
			return fmt.Errorf("create register movement: %w", err)
		}
	}

	logger.Info(ctx, "recorded document payment",
		"document_id", p.SourceDocumentID,
		"kind", string(p.Kind),
		"amount", p.Amount.String(),
		"with_register", reg != nil,
	)

	return nil
}

// expenseName embeds the reference token in the record name, the layout the
// legacy reconciliation understands.
func expenseName(reference string) string {
	if reference == "" {
		return "Bon"
	}
	return "Bon: " + reference
}

// movementType maps the expense direction onto a register movement:
// a payment takes money out of the register, a collection puts it in.
func movementType(kind ExpenseKind) TransactionType {
	if kind == KindCollection {
		return TransactionIncome
	}
	return TransactionExpense
}

// RecordManualTransaction records a user-entered register movement.
func (s *Service) RecordManualTransaction(ctx context.Context, tx *CashTransaction) error {
	if err := tx.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.repo.GetRegister(ctx, tx.RegisterID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("cash register", tx.RegisterID.String())
		}
		return err
	}
	tx.SourceType = SourceManual
	tx.SourceDocumentID = nil

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// DailySummary computes per-register balances for a calendar day:
// opening = initial_balance + folded stream before the day,
// closing = opening + income(day) - expense(day).
// Registers are independent, so they are computed concurrently.
func (s *Service) DailySummary(ctx context.Context, tenantID id.ID, day time.Time) ([]DailyBalance, error) {
	day = day.Truncate(24 * time.Hour)

	registers, err := s.repo.ListRegisters(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list registers: %w", err)
	}

	balances := make([]DailyBalance, len(registers))

	g, gctx := errgroup.WithContext(ctx)
	for i, reg := range registers {
		i, reg := i, reg
		g.Go(func() error {
			net, err := s.repo.NetBefore(gctx, reg.ID, day)
			if err != nil {
				return fmt.Errorf("net before %s for %s: %w", day.Format("2006-01-02"), reg.Name, err)
			}
			income, expense, err := s.repo.DayTotals(gctx, reg.ID, day)
			if err != nil {
				return fmt.Errorf("day totals for %s: %w", reg.Name, err)
			}

			opening := reg.InitialBalance.Add(net)
			balances[i] = DailyBalance{
				Register: reg,
				Opening:  opening,
				Income:   income,
				Expense:  expense,
				Closing:  opening.Add(income).Sub(expense),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return balances, nil
}

// CreateRegister creates a cash register.
func (s *Service) CreateRegister(ctx context.Context, reg *CashRegister) error {
	if err := reg.Validate(ctx); err != nil {
		return err
	}
	return s.repo.CreateRegister(ctx, reg)
}

// GetRegister retrieves a cash register by ID.
func (s *Service) GetRegister(ctx context.Context, registerID id.ID) (*CashRegister, error) {
	return s.repo.GetRegister(ctx, registerID)
}

// ListRegisters returns the tenant's registers.
func (s *Service) ListRegisters(ctx context.Context, tenantID id.ID) ([]*CashRegister, error) {
	return s.repo.ListRegisters(ctx, tenantID)
}
