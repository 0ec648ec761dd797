package acquisition

import (
	"context"
	"time"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents"
)

// Repository defines operations for acquisition documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, docID id.ID) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations. SaveLines replaces wholesale: delete-all, insert-new.
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	DeleteLines(ctx context.Context, docID id.ID) error

	// List operations
	List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error)
}

// ListFilter for filtering acquisitions.
type ListFilter struct {
	domain.ListFilter

	SupplierID    *id.ID
	ContractID    *id.ID
	PaymentStatus *documents.PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}
