package sale

import (
	"context"
	"fmt"

	"yardbook/internal/core/id"
	"yardbook/internal/core/tx"
	"yardbook/internal/domain"
	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/documents"
	"yardbook/pkg/logger"
	"yardbook/pkg/numerator"
)

// Service provides business operations for sale documents.
// Sales decrement yard stock; deleting a sale puts the quantity back,
// which is the one reversal the yard's bookkeeping has always relied on.
type Service struct {
	repo      Repository
	ledger    documents.StockLedger
	payments  documents.PaymentRecorder
	numerator numerator.Generator
	txManager tx.Manager
	policy    documents.ReversalPolicy
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	stockLedger documents.StockLedger,
	payments documents.PaymentRecorder,
	gen numerator.Generator,
	txManager tx.Manager,
	policy documents.ReversalPolicy,
) *Service {
	return &Service{
		repo:      repo,
		ledger:    stockLedger,
		payments:  payments,
		numerator: gen,
		txManager: txManager,
		policy:    policy,
	}
}

// Create persists the document, posts -net_quantity for every line at the
// yard key, and records the collection side effect when the document
// arrives already (partly) paid. Stock may legitimately go negative here:
// the scale sometimes sees outbound weight for material whose acquisition
// paperwork lags behind.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.RecalculateTotals()

	if doc.Number == "" {
		number, err := s.numerator.NextNumber(ctx, doc.TenantID, "VAN", doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		for _, line := range doc.Lines {
			if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity().Neg()); err != nil {
				return fmt.Errorf("post line %d: %w", line.LineNo, err)
			}
		}

		if doc.PaymentStatus != documents.PaymentUnpaid {
			amount := doc.PaymentAmount()
			if amount.IsPositive() {
				err := s.payments.RecordDocumentPayment(ctx, cash.DocumentPayment{
					TenantID:         doc.TenantID,
					Date:             doc.Date,
					Kind:             cash.KindCollection,
					Amount:           amount,
					Reference:        doc.ScaleNumber,
					SourceType:       cash.SourceSale,
					SourceDocumentID: doc.ID,
					RegisterID:       doc.RegisterID,
					AttributionType:  cash.AttributionNone,
				})
				if err != nil {
					return fmt.Errorf("record collection: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID,
		"number", doc.Number,
		"lines", len(doc.Lines),
		"payment_status", string(doc.PaymentStatus),
	)

	return nil
}

// GetByID retrieves a sale with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update replaces the document and its lines wholesale. The replacement
// lines post fresh decrements; ReverseOnUpdate puts the old decrements
// back first. A collection is emitted only on an unpaid -> paid/partial
// transition or a fresh positive partial installment.
func (s *Service) Update(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.RecalculateTotals()

	prev, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.policy.ReverseOnUpdate {
			oldLines, err := s.repo.GetLines(ctx, doc.ID)
			if err != nil {
				return fmt.Errorf("get previous lines: %w", err)
			}
			for _, line := range oldLines {
				if _, err := s.ledger.Adjust(ctx, prev.LedgerKey(line.MaterialID), line.NetQuantity()); err != nil {
					return fmt.Errorf("reverse line %d: %w", line.LineNo, err)
				}
			}
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		for _, line := range doc.Lines {
			if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity().Neg()); err != nil {
				return fmt.Errorf("post line %d: %w", line.LineNo, err)
			}
		}

		if documents.EmitPayment(prev.PaymentStatus, doc.PaymentStatus, doc.PartialAmount.IsPositive()) {
			amount := doc.PaymentAmount()
			if amount.IsPositive() {
				err := s.payments.RecordDocumentPayment(ctx, cash.DocumentPayment{
					TenantID:         doc.TenantID,
					Date:             doc.Date,
					Kind:             cash.KindCollection,
					Amount:           amount,
					Reference:        doc.ScaleNumber,
					SourceType:       cash.SourceSale,
					SourceDocumentID: doc.ID,
					RegisterID:       doc.RegisterID,
					AttributionType:  cash.AttributionNone,
				})
				if err != nil {
					return fmt.Errorf("record collection: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale updated", "id", doc.ID, "number", doc.Number)

	return nil
}

// Delete removes lines and header. Under the default policy the sold
// quantity is put back on the yard balance before the rows go.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.policy.ReverseOnDelete {
			for _, line := range doc.Lines {
				if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity()); err != nil {
					return fmt.Errorf("reverse line %d: %w", line.LineNo, err)
				}
			}
		}

		if err := s.repo.DeleteLines(ctx, docID); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted",
		"id", docID,
		"stock_reversed", s.policy.ReverseOnDelete,
	)

	return nil
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error) {
	return s.repo.List(ctx, tenantID, filter)
}
