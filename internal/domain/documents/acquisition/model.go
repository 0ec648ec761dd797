// Package acquisition provides the acquisition document: a purchase of
// scrap material from a supplier, weighed at the gate.
package acquisition

import (
	"context"

	"github.com/shopspring/decimal"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/ledger"
)

// Visibility tags a line for display and reporting filters only;
// it never influences ledger postings.
type Visibility string

const (
	VisibilityNormal   Visibility = "normal"
	VisibilityZero     Visibility = "zero"
	VisibilityDirector Visibility = "director"
)

// Document is an acquisition (purchase) of scrap material.
type Document struct {
	entity.Document

	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// ReceiptNumber is the reference token printed on the weighing ticket.
	ReceiptNumber string `db:"receipt_number" json:"receiptNumber"`

	PaymentStatus documents.PaymentStatus `db:"payment_status" json:"paymentStatus"`

	// PartialAmount is the installment paid now when PaymentStatus is partial.
	PartialAmount types.Money `db:"partial_amount" json:"partialAmount"`

	// Location and ContractID derive the ledger key for every line.
	Location   ledger.LocationType `db:"location_type" json:"location"`
	ContractID *id.ID              `db:"contract_id" json:"contractId,omitempty"`

	// RegisterID is the cash register selected for the payment, if any.
	RegisterID *id.ID `db:"register_id" json:"registerId,omitempty"`

	// Totals (calculated from lines)
	TotalAmount      types.Money    `db:"total_amount" json:"totalAmount"`
	TotalNetQuantity types.Quantity `db:"total_net_quantity" json:"totalNetQuantity"`

	// Transport metadata
	TransportPlate string `db:"transport_plate" json:"transportPlate,omitempty"`
	Carrier        string `db:"carrier" json:"carrier,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one weighed material on an acquisition.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	MaterialID id.ID `db:"material_id" json:"materialId"`

	GrossQuantity types.Quantity `db:"gross_quantity" json:"grossQuantity"`

	// ImpurityPercent is the deduction entered as a percentage of gross.
	ImpurityPercent decimal.Decimal `db:"impurity_percent" json:"impurityPercent"`

	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Amount    types.Money `db:"amount" json:"amount"`

	Visibility Visibility `db:"visibility" json:"visibility"`
}

// NetQuantity is gross x (1 - impurity/100), rounded to the ledger's
// fixed-point precision.
func (l Line) NetQuantity() types.Quantity {
	factor := decimal.NewFromInt(1).Sub(l.ImpurityPercent.Div(decimal.NewFromInt(100)))
	return types.NewQuantityFromDecimal(l.GrossQuantity.Decimal().Mul(factor))
}

// New creates an acquisition document.
func New(tenantID, supplierID id.ID, location ledger.LocationType) *Document {
	return &Document{
		Document:      entity.NewDocument(tenantID),
		SupplierID:    supplierID,
		PaymentStatus: documents.PaymentUnpaid,
		Location:      location,
		TotalAmount:   types.Zero(),
		PartialAmount: types.Zero(),
		Lines:         make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (d *Document) AddLine(materialID id.ID, gross types.Quantity, impurityPercent decimal.Decimal, unitPrice types.Money, visibility Visibility) {
	if visibility == "" {
		visibility = VisibilityNormal
	}
	line := Line{
		LineID:          id.New(),
		LineNo:          len(d.Lines) + 1,
		MaterialID:      materialID,
		GrossQuantity:   gross,
		ImpurityPercent: impurityPercent,
		UnitPrice:       unitPrice,
		Visibility:      visibility,
	}
	line.Amount = line.NetQuantity().Decimal().Mul(unitPrice).Round(2)

	d.Lines = append(d.Lines, line)
	d.RecalculateTotals()
}

// RecalculateTotals updates document totals from lines.
func (d *Document) RecalculateTotals() {
	d.TotalAmount = types.Zero()
	d.TotalNetQuantity = 0
	for _, line := range d.Lines {
		d.TotalAmount = d.TotalAmount.Add(line.Amount)
		d.TotalNetQuantity += line.NetQuantity()
	}
}

// PaymentAmount returns the amount the current save settles:
// the full total when paid, the entered installment when partial.
func (d *Document) PaymentAmount() types.Money {
	switch d.PaymentStatus {
	case documents.PaymentPaid:
		return d.TotalAmount
	case documents.PaymentPartial:
		return d.PartialAmount
	default:
		return types.Zero()
	}
}

// LedgerKey derives the stock key for a line's material: contract stock when
// the document is contract-located, otherwise the bare location with no contract.
func (d *Document) LedgerKey(materialID id.ID) ledger.Key {
	if d.Location == ledger.LocationContract && d.ContractID != nil {
		return ledger.ContractKey(d.TenantID, materialID, *d.ContractID)
	}
	return ledger.Key{TenantID: d.TenantID, MaterialID: materialID, Location: d.Location}
}

// Validate implements entity.Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if !d.Location.Valid() {
		return apperror.NewValidation("unknown location type").
			WithDetail("field", "location").
			WithDetail("value", string(d.Location))
	}

	if d.Location == ledger.LocationContract && (d.ContractID == nil || id.IsNil(*d.ContractID)) {
		return apperror.NewValidation("contract is required for contract acquisitions").
			WithDetail("field", "contractId")
	}

	if !d.PaymentStatus.Valid() {
		return apperror.NewValidation("unknown payment status").
			WithDetail("field", "paymentStatus").
			WithDetail("value", string(d.PaymentStatus))
	}

	if d.PaymentStatus == documents.PaymentPartial && d.PartialAmount.IsNegative() {
		return apperror.NewValidation("partial amount must not be negative").
			WithDetail("field", "partialAmount")
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	hundred := decimal.NewFromInt(100)
	for i, line := range d.Lines {
		if id.IsNil(line.MaterialID) {
			return apperror.NewValidation("material is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.GrossQuantity.IsPositive() {
			return apperror.NewValidation("gross quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.ImpurityPercent.IsNegative() || line.ImpurityPercent.GreaterThan(hundred) {
			return apperror.NewValidation("impurity percent must be between 0 and 100").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
