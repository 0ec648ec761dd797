package acquisition

import (
	"context"
	"fmt"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/id"
	"yardbook/internal/core/tx"
	"yardbook/internal/domain"
	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/catalogs/partner"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/ledger"
	"yardbook/pkg/logger"
	"yardbook/pkg/numerator"
)

// PartnerLookup resolves a supplier for payment attribution.
type PartnerLookup interface {
	GetByID(ctx context.Context, partnerID id.ID) (*partner.Partner, error)
}

// Service provides business operations for acquisition documents.
// Every mutation runs the whole header+lines+ledger+cash sequence inside
// one transaction; the legacy system committed each step independently and
// could leave half-posted documents behind.
type Service struct {
	repo      Repository
	ledger    documents.StockLedger
	payments  documents.PaymentRecorder
	partners  PartnerLookup
	numerator numerator.Generator
	txManager tx.Manager
	policy    documents.ReversalPolicy
}

// NewService creates a new acquisition service.
func NewService(
	repo Repository,
	stockLedger documents.StockLedger,
	payments documents.PaymentRecorder,
	partners PartnerLookup,
	gen numerator.Generator,
	txManager tx.Manager,
	policy documents.ReversalPolicy,
) *Service {
	return &Service{
		repo:      repo,
		ledger:    stockLedger,
		payments:  payments,
		partners:  partners,
		numerator: gen,
		txManager: txManager,
		policy:    policy,
	}
}

// Create persists the document, posts +net_quantity for every line at the
// document's ledger key, and records the payment side effect when the
// document arrives already (partly) paid.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.RecalculateTotals()

	if doc.Number == "" {
		number, err := s.numerator.NextNumber(ctx, doc.TenantID, "ACH", doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	attrType, attrID := s.resolveAttribution(ctx, doc)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		for _, line := range doc.Lines {
			if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity()); err != nil {
				return fmt.Errorf("post line %d: %w", line.LineNo, err)
			}
		}

		if doc.PaymentStatus != documents.PaymentUnpaid {
			amount := doc.PaymentAmount()
			if amount.IsPositive() {
				err := s.payments.RecordDocumentPayment(ctx, cash.DocumentPayment{
					TenantID:         doc.TenantID,
					Date:             doc.Date,
					Kind:             cash.KindPayment,
					Amount:           amount,
					Reference:        doc.ReceiptNumber,
					SourceType:       cash.SourceAcquisition,
					SourceDocumentID: doc.ID,
					RegisterID:       doc.RegisterID,
					AttributionType:  attrType,
					AttributionID:    attrID,
				})
				if err != nil {
					return fmt.Errorf("record payment: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "acquisition created",
		"id", doc.ID,
		"number", doc.Number,
		"lines", len(doc.Lines),
		"payment_status", string(doc.PaymentStatus),
	)

	return nil
}

// GetByID retrieves an acquisition with lines.
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

// Update replaces the document and its lines wholesale. With the default
// policy the previously posted stock stays in place, so the replacement
// lines post on top of it; ReverseOnUpdate backs the old lines out first.
// A payment is emitted only on an unpaid -> paid/partial transition or a
// fresh positive partial installment, never by re-saving a paid document.
func (s *Service) Update(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.RecalculateTotals()

	prev, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}

	attrType, attrID := s.resolveAttribution(ctx, doc)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.policy.ReverseOnUpdate {
			oldLines, err := s.repo.GetLines(ctx, doc.ID)
			if err != nil {
				return fmt.Errorf("get previous lines: %w", err)
			}
			for _, line := range oldLines {
				if _, err := s.ledger.Adjust(ctx, prevKey(prev, line.MaterialID), line.NetQuantity().Neg()); err != nil {
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
			if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity()); err != nil {
				return fmt.Errorf("post line %d: %w", line.LineNo, err)
			}
		}

		if documents.EmitPayment(prev.PaymentStatus, doc.PaymentStatus, doc.PartialAmount.IsPositive()) {
			amount := doc.PaymentAmount()
			if amount.IsPositive() {
				err := s.payments.RecordDocumentPayment(ctx, cash.DocumentPayment{
					TenantID:         doc.TenantID,
					Date:             doc.Date,
					Kind:             cash.KindPayment,
					Amount:           amount,
					Reference:        doc.ReceiptNumber,
					SourceType:       cash.SourceAcquisition,
					SourceDocumentID: doc.ID,
					RegisterID:       doc.RegisterID,
					AttributionType:  attrType,
					AttributionID:    attrID,
				})
				if err != nil {
					return fmt.Errorf("record payment: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "acquisition updated", "id", doc.ID, "number", doc.Number)

	return nil
}

// Delete removes lines and header. With the default policy the stock posted
// at creation stays in the ledger; flip ReverseOnDelete to back it out.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.policy.ReverseOnDelete {
			for _, line := range doc.Lines {
				if _, err := s.ledger.Adjust(ctx, doc.LedgerKey(line.MaterialID), line.NetQuantity().Neg()); err != nil {
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

	logger.Info(ctx, "acquisition deleted",
		"id", docID,
		"stock_reversed", s.policy.ReverseOnDelete,
	)

	return nil
}

// List retrieves acquisitions with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error) {
	return s.repo.List(ctx, tenantID, filter)
}

// resolveAttribution picks who the payment is booked against: the contract
// for contract-located acquisitions, the supplier when it is a field office,
// nobody otherwise. Lookup failures degrade to no attribution.
func (s *Service) resolveAttribution(ctx context.Context, doc *Document) (cash.AttributionType, *id.ID) {
	if doc.Location == ledger.LocationContract && doc.ContractID != nil {
		return cash.AttributionContract, doc.ContractID
	}

	supplier, err := s.partners.GetByID(ctx, doc.SupplierID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			logger.Warn(ctx, "supplier lookup failed, payment left unattributed",
				"supplier_id", doc.SupplierID, "error", err)
		}
		return cash.AttributionNone, nil
	}
	if supplier.FieldOffice {
		supplierID := doc.SupplierID
		return cash.AttributionSupplier, &supplierID
	}
	return cash.AttributionNone, nil
}

// prevKey derives the ledger key the previous revision posted to, so
// reversals hit the same balance even when the location changed.
func prevKey(prev *Document, materialID id.ID) ledger.Key {
	return prev.LedgerKey(materialID)
}
