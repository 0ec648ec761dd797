// Package sale provides the sale document: scrap material sold and weighed
// out of the yard. Sales always draw from yard stock, never from contract
// or WEEE stock.
package sale

import (
	"context"

	"yardbook/internal/core/apperror"
	"yardbook/internal/core/entity"
	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/ledger"
)

// Document is a sale of scrap material.
type Document struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// ScaleNumber is the reference token from the weighbridge ticket.
	ScaleNumber string `db:"scale_number" json:"scaleNumber"`

	PaymentStatus documents.PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PartialAmount types.Money             `db:"partial_amount" json:"partialAmount"`

	// RegisterID is the cash register selected for the collection, if any.
	RegisterID *id.ID `db:"register_id" json:"registerId,omitempty"`

	TotalAmount      types.Money    `db:"total_amount" json:"totalAmount"`
	TotalNetQuantity types.Quantity `db:"total_net_quantity" json:"totalNetQuantity"`

	TransportPlate string `db:"transport_plate" json:"transportPlate,omitempty"`
	Carrier        string `db:"carrier" json:"carrier,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one weighed material on a sale. Impurity is entered as an
// absolute weight, unlike acquisitions where it is a percentage.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	MaterialID id.ID `db:"material_id" json:"materialId"`

	GrossQuantity  types.Quantity `db:"gross_quantity" json:"grossQuantity"`
	ImpurityWeight types.Quantity `db:"impurity_weight" json:"impurityWeight"`

	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Amount    types.Money `db:"amount" json:"amount"`
}

// NetQuantity is gross minus impurity weight, floored at zero.
func (l Line) NetQuantity() types.Quantity {
	net := l.GrossQuantity - l.ImpurityWeight
	if net.IsNegative() {
		return 0
	}
	return net
}

// New creates a sale document.
func New(tenantID, customerID id.ID) *Document {
	return &Document{
		Document:      entity.NewDocument(tenantID),
		CustomerID:    customerID,
		PaymentStatus: documents.PaymentUnpaid,
		TotalAmount:   types.Zero(),
		PartialAmount: types.Zero(),
		Lines:         make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (d *Document) AddLine(materialID id.ID, gross, impurity types.Quantity, unitPrice types.Money) {
	line := Line{
		LineID:         id.New(),
		LineNo:         len(d.Lines) + 1,
		MaterialID:     materialID,
		GrossQuantity:  gross,
		ImpurityWeight: impurity,
		UnitPrice:      unitPrice,
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

// PaymentAmount returns the amount the current save collects.
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

// LedgerKey is always the yard key: sales only ever draw from yard stock.
func (d *Document) LedgerKey(materialID id.ID) ledger.Key {
	return ledger.YardKey(d.TenantID, materialID)
}

// Validate implements entity.Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
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
		if line.ImpurityWeight.IsNegative() {
			return apperror.NewValidation("impurity weight must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
