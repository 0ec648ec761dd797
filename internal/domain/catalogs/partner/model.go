// Package partner provides the counterparty catalog (suppliers and customers).
package partner

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/domain"
)

// Kind distinguishes suppliers from customers. A partner can be both.
type Kind string

const (
	KindSupplier Kind = "supplier"
	KindCustomer Kind = "customer"
)

// Partner is one counterparty.
type Partner struct {
	entity.BaseCatalog

	Name string `db:"name" json:"name"`
	Kind Kind   `db:"kind" json:"kind"`

	// FieldOffice marks suppliers that operate as a field collection point;
	// payments to them are attributed to the supplier rather than left unattributed.
	FieldOffice bool `db:"field_office" json:"fieldOffice"`

	TaxCode string `db:"tax_code" json:"taxCode,omitempty"`
}

// New creates a new partner.
func New(tenantID id.ID, name string, kind Kind) *Partner {
	return &Partner{
		BaseCatalog: entity.NewBaseCatalog(tenantID),
		Name:        name,
		Kind:        kind,
	}
}

// Validate implements entity.Validatable.
func (p *Partner) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// Repository defines operations for the partner catalog.
type Repository interface {
	GetByID(ctx context.Context, partnerID id.ID) (*Partner, error)
	List(ctx context.Context, tenantID id.ID, filter domain.ListFilter) (domain.ListResult[*Partner], error)
	Exists(ctx context.Context, partnerID id.ID) (bool, error)
}
