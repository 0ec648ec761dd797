// Package material provides the material catalog (read-only reference data
// for the ledger: the engine consumes materials, it does not own them).
package material

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
)

// Material is one catalog entry (copper, aluminium, cable, WEEE fraction...).
type Material struct {
	entity.BaseCatalog

	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	// Unit is the weighing unit, kilograms everywhere in practice.
	Unit string `db:"unit" json:"unit"`
}

// New creates a new material.
func New(tenantID id.ID, name, category string) *Material {
	return &Material{
		BaseCatalog: entity.NewBaseCatalog(tenantID),
		Name:        name,
		Category:    category,
		Unit:        "kg",
	}
}

// Validate implements entity.Validatable.
func (m *Material) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
