package dismantling

import (
	"context"
	"time"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Repository defines operations for dismantling documents.
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, docID id.ID) (*Document, error)
	Delete(ctx context.Context, docID id.ID) error

	GetOutputs(ctx context.Context, docID id.ID) ([]Output, error)
	SaveOutputs(ctx context.Context, docID id.ID, outputs []Output) error
	DeleteOutputs(ctx context.Context, docID id.ID) error

	List(ctx context.Context, tenantID id.ID, filter ListFilter) (domain.ListResult[*Document], error)
}

// ListFilter for filtering dismantlings.
type ListFilter struct {
	domain.ListFilter

	SourceMaterialID *id.ID
	DateFrom         *time.Time
	DateTo           *time.Time
}
