// Package dismantling provides the dismantling document: one source
// material taken apart into several output materials at the same location.
package dismantling

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/ledger"
)

// Document is a dismantling operation. The source quantity leaves the
// balance of SourceMaterialID and each output quantity arrives on the
// balance of its own material, all at the same location and contract.
type Document struct {
	entity.Document

	SourceMaterialID id.ID          `db:"source_material_id" json:"sourceMaterialId"`
	SourceQuantity   types.Quantity `db:"source_quantity" json:"sourceQuantity"`

	Location   ledger.LocationType `db:"location_type" json:"location"`
	ContractID *id.ID              `db:"contract_id" json:"contractId,omitempty"`

	Outputs []Output `db:"-" json:"outputs"`
}

// Output is one material recovered from the source.
type Output struct {
	OutputID id.ID `db:"output_id" json:"outputId"`
	LineNo   int   `db:"line_no" json:"lineNo"`

	MaterialID id.ID          `db:"material_id" json:"materialId"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
}

// New creates a dismantling document at the yard location.
func New(tenantID, sourceMaterialID id.ID, sourceQuantity types.Quantity) *Document {
	return &Document{
		Document:         entity.NewDocument(tenantID),
		SourceMaterialID: sourceMaterialID,
		SourceQuantity:   sourceQuantity,
		Location:         ledger.LocationYard,
		Outputs:          make([]Output, 0),
	}
}

// AddOutput appends an output line.
func (d *Document) AddOutput(materialID id.ID, quantity types.Quantity) {
	d.Outputs = append(d.Outputs, Output{
		OutputID:   id.New(),
		LineNo:     len(d.Outputs) + 1,
		MaterialID: materialID,
		Quantity:   quantity,
	})
}

// TotalOutputQuantity sums output quantities. It is reported alongside the
// source quantity but never enforced against it: dismantling loses dust,
// dirt and unusable scrap.
func (d *Document) TotalOutputQuantity() types.Quantity {
	var total types.Quantity
	for _, out := range d.Outputs {
		total += out.Quantity
	}
	return total
}

// SourceKey is the ledger key the source quantity is drawn from.
func (d *Document) SourceKey() ledger.Key {
	return d.key(d.SourceMaterialID)
}

// OutputKey is the ledger key an output quantity is posted to. Outputs
// land at the same location and contract as the source.
func (d *Document) OutputKey(materialID id.ID) ledger.Key {
	return d.key(materialID)
}

func (d *Document) key(materialID id.ID) ledger.Key {
	switch d.Location {
	case ledger.LocationContract:
		contractID := id.Nil()
		if d.ContractID != nil {
			contractID = *d.ContractID
		}
		return ledger.ContractKey(d.TenantID, materialID, contractID)
	case ledger.LocationWEEE:
		return ledger.WEEEKey(d.TenantID, materialID)
	default:
		return ledger.YardKey(d.TenantID, materialID)
	}
}

// Validate implements entity.Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.SourceMaterialID) {
		return apperror.NewValidation("source material is required").
			WithDetail("field", "sourceMaterialId")
	}
	if !d.SourceQuantity.IsPositive() {
		return apperror.NewValidation("source quantity must be positive").
			WithDetail("field", "sourceQuantity")
	}
	if !d.Location.Valid() {
		return apperror.NewValidation("unknown location type").
			WithDetail("field", "location").
			WithDetail("value", string(d.Location))
	}
	if d.Location == ledger.LocationContract && d.ContractID == nil {
		return apperror.NewValidation("contract is required for contract location").
			WithDetail("field", "contractId")
	}
	if d.Location != ledger.LocationContract && d.ContractID != nil {
		return apperror.NewValidation("contract is only allowed for contract location").
			WithDetail("field", "contractId")
	}

	if len(d.Outputs) == 0 {
		return apperror.NewValidation("at least one output is required").
			WithDetail("field", "outputs")
	}

	for i, out := range d.Outputs {
		if id.IsNil(out.MaterialID) {
			return apperror.NewValidation("output material is required").
				WithDetail("field", "outputs").
				WithDetail("lineNo", i+1)
		}
		if !out.Quantity.IsPositive() {
			return apperror.NewValidation("output quantity must be positive").
				WithDetail("field", "outputs").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
