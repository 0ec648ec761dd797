package material

import (
	"context"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Repository defines read operations for the material catalog.
// The engine never writes materials; they are seeded externally.
type Repository interface {
	GetByID(ctx context.Context, materialID id.ID) (*Material, error)
	List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Material], error)
	Exists(ctx context.Context, materialID id.ID) (bool, error)
}
