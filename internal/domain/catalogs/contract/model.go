// Package contract provides the contract catalog. Contract stock is kept on
// its own ledger keys, earmarked away from the yard balance.
package contract

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Contract is one earmarking agreement with a partner.
type Contract struct {
	entity.BaseCatalog

	PartnerID id.ID  `db:"partner_id" json:"partnerId"`
	Name      string `db:"name" json:"name"`
	Active    bool   `db:"active" json:"active"`
}

// New creates a new contract.
func New(tenantID, partnerID id.ID, name string) *Contract {
	return &Contract{
		BaseCatalog: entity.NewBaseCatalog(tenantID),
		PartnerID:   partnerID,
		Name:        name,
		Active:      true,
	}
}

// Validate implements entity.Validatable.
func (c *Contract) Validate(ctx context.Context) error {
	if id.IsNil(c.PartnerID) {
		return apperror.NewValidation("partner is required").WithDetail("field", "partnerId")
	}
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// Repository defines operations for the contract catalog.
type Repository interface {
	GetByID(ctx context.Context, contractID id.ID) (*Contract, error)
	List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Contract], error)
	Exists(ctx context.Context, contractID id.ID) (bool, error)
}
