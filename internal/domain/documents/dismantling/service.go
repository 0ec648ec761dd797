package dismantling

import (
	"context"
	"fmt"

	"yardbook/internal/core/id"
	"yardbook/internal/core/tx"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents"
	"yardbook/pkg/logger"
	"yardbook/pkg/numerator"
)

// Service provides business operations for dismantling documents.
type Service struct {
	repo      Repository
	ledger    documents.StockLedger
	numerator numerator.Generator
	txManager tx.Manager
	policy    documents.ReversalPolicy
}

// NewService creates a new dismantling service.
func NewService(
	repo Repository,
	stockLedger documents.StockLedger,
	gen numerator.Generator,
	txManager tx.Manager,
	policy documents.ReversalPolicy,
) *Service {
	return &Service{
		repo:      repo,
		ledger:    stockLedger,
		numerator: gen,
		txManager: txManager,
		policy:    policy,
	}
}

// Create persists the document, draws the source quantity from the source
// balance and posts each output quantity at the same location. Available
// stock is checked softly: a shortfall is logged, never rejected, because
// the physical dismantling already happened by the time it is typed in.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		number, err := s.numerator.NextNumber(ctx, doc.TenantID, "DEZ", doc.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	available, err := s.ledger.GetQuantity(ctx, doc.SourceKey())
	if err != nil {
		return fmt.Errorf("check source stock: %w", err)
	}
	if available < doc.SourceQuantity {
		logger.Warn(ctx, "dismantling exceeds available stock",
			"material_id", doc.SourceMaterialID,
			"available", available,
			"requested", doc.SourceQuantity,
		)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveOutputs(ctx, doc.ID, doc.Outputs); err != nil {
			return fmt.Errorf("save outputs: %w", err)
		}

		if _, err := s.ledger.Adjust(ctx, doc.SourceKey(), doc.SourceQuantity.Neg()); err != nil {
			return fmt.Errorf("post source: %w", err)
		}
		for _, out := range doc.Outputs {
			if _, err := s.ledger.Adjust(ctx, doc.OutputKey(out.MaterialID), out.Quantity); err != nil {
				return fmt.Errorf("post output %d: %w", out.LineNo, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "dismantling created",
		"id", doc.ID,
		"number", doc.Number,
		"source_material_id", doc.SourceMaterialID,
		"outputs", len(doc.Outputs),
	)

	return nil
}

// GetByID retrieves a dismantling with outputs.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	outputs, err := s.repo.GetOutputs(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get outputs: %w", err)
	}
	doc.Outputs = outputs

	return doc, nil
}

// Delete removes outputs and header. Under the default policy the ledger
// effects stay in place: the source stays drawn down and the outputs stay
// posted. Flipping ReverseOnDelete backs both sides out.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.policy.ReverseOnDelete {
			if _, err := s.ledger.Adjust(ctx, doc.SourceKey(), doc.SourceQuantity); err != nil {
				return fmt.Errorf("reverse source: %w", err)
			}
			for _, out := range doc.Outputs {
				if _, err := s.ledger.Adjust(ctx, doc.OutputKey(out.MaterialID), out.Quantity.Neg()); err != nil {
					return fmt.Errorf("reverse output %d: %w", out.LineNo, err)
				}
			}
		}

		if err := s.repo.DeleteOutputs(ctx, docID); err != nil {
			return fmt.Errorf("delete outputs: %w", err)
		}
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !s.policy.ReverseOnDelete {
		logger.Warn(ctx, "dismantling deleted without reversing stock",
			"id", docID,
			"source_material_id", doc.SourceMaterialID,
			"source_quantity", doc.SourceQuantity,
		)
	} else {
		logger.Info(ctx, "dismantling deleted", "id", docID, "stock_reversed", true)
	}

	return nil
}

// List retrieves dismantlings with filtering.
func (s *Service) List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error) {
	return s.repo.List(ctx, tenantID, filter)
}
