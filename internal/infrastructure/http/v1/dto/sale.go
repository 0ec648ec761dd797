package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/documents/sale"
)

// CreateSaleRequest for creating a sale document.
type CreateSaleRequest struct {
	CustomerID  string    `json:"customerId" binding:"required,uuid"`
	Date        time.Time `json:"date" binding:"required"`
	ScaleNumber string    `json:"scaleNumber"`
	Comment     string    `json:"comment"`

	PaymentStatus string          `json:"paymentStatus"`
	PartialAmount decimal.Decimal `json:"partialAmount"`

	RegisterID *string `json:"registerId"`

	TransportPlate string `json:"transportPlate"`
	Carrier        string `json:"carrier"`

	Lines []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SaleLineRequest is one line of a sale request.
type SaleLineRequest struct {
	MaterialID     string          `json:"materialId" binding:"required,uuid"`
	GrossQuantity  types.Quantity  `json:"grossQuantity"`
	ImpurityWeight types.Quantity  `json:"impurityWeight"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
}

// ToEntity converts the request to a domain document.
func (r CreateSaleRequest) ToEntity(tenantID id.ID) *sale.Document {
	customerID, _ := id.Parse(r.CustomerID)

	doc := sale.New(tenantID, customerID)
	doc.Date = r.Date
	doc.ScaleNumber = r.ScaleNumber
	doc.Comment = r.Comment
	doc.PartialAmount = r.PartialAmount
	doc.TransportPlate = r.TransportPlate
	doc.Carrier = r.Carrier

	if r.PaymentStatus != "" {
		doc.PaymentStatus = documents.PaymentStatus(r.PaymentStatus)
	}
	if r.RegisterID != nil {
		if registerID, err := id.Parse(*r.RegisterID); err == nil {
			doc.RegisterID = &registerID
		}
	}

	for _, line := range r.Lines {
		materialID, _ := id.Parse(line.MaterialID)
		doc.AddLine(materialID, line.GrossQuantity, line.ImpurityWeight, line.UnitPrice)
	}

	return doc
}

// UpdateSaleRequest for updating a sale document.
type UpdateSaleRequest struct {
	Date        *time.Time `json:"date"`
	ScaleNumber *string    `json:"scaleNumber"`
	Comment     *string    `json:"comment"`

	PaymentStatus *string          `json:"paymentStatus"`
	PartialAmount *decimal.Decimal `json:"partialAmount"`

	RegisterID *string `json:"registerId"`

	TransportPlate *string `json:"transportPlate"`
	Carrier        *string `json:"carrier"`

	// Lines replace the document's lines wholesale when present.
	Lines []SaleLineRequest `json:"lines"`
}

// ApplyTo applies non-nil fields to an existing document.
func (r UpdateSaleRequest) ApplyTo(doc *sale.Document) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.ScaleNumber != nil {
		doc.ScaleNumber = *r.ScaleNumber
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.PaymentStatus != nil {
		doc.PaymentStatus = documents.PaymentStatus(*r.PaymentStatus)
	}
	if r.PartialAmount != nil {
		doc.PartialAmount = *r.PartialAmount
	}
	if r.RegisterID != nil {
		if registerID, err := id.Parse(*r.RegisterID); err == nil {
			doc.RegisterID = &registerID
		}
	}
	if r.TransportPlate != nil {
		doc.TransportPlate = *r.TransportPlate
	}
	if r.Carrier != nil {
		doc.Carrier = *r.Carrier
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, line := range r.Lines {
			materialID, _ := id.Parse(line.MaterialID)
			doc.AddLine(materialID, line.GrossQuantity, line.ImpurityWeight, line.UnitPrice)
		}
	}
}

// SaleLineResponse is one line of a sale response.
type SaleLineResponse struct {
	LineID         string          `json:"lineId"`
	LineNo         int             `json:"lineNo"`
	MaterialID     string          `json:"materialId"`
	GrossQuantity  types.Quantity  `json:"grossQuantity"`
	ImpurityWeight types.Quantity  `json:"impurityWeight"`
	NetQuantity    types.Quantity  `json:"netQuantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Amount         decimal.Decimal `json:"amount"`
}

// SaleResponse is the API shape of a sale document.
type SaleResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Date        time.Time `json:"date"`
	CustomerID  string    `json:"customerId"`
	ScaleNumber string    `json:"scaleNumber"`
	Comment     string    `json:"comment,omitempty"`

	PaymentStatus string          `json:"paymentStatus"`
	PartialAmount decimal.Decimal `json:"partialAmount"`

	RegisterID *string `json:"registerId,omitempty"`

	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalNetQuantity types.Quantity  `json:"totalNetQuantity"`

	TransportPlate string `json:"transportPlate,omitempty"`
	Carrier        string `json:"carrier,omitempty"`

	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Lines []SaleLineResponse `json:"lines,omitempty"`
}

// FromSale converts a domain document to the API shape.
func FromSale(doc *sale.Document) SaleResponse {
	resp := SaleResponse{
		ID:               doc.ID.String(),
		Number:           doc.Number,
		Date:             doc.Date,
		CustomerID:       doc.CustomerID.String(),
		ScaleNumber:      doc.ScaleNumber,
		Comment:          doc.Comment,
		PaymentStatus:    string(doc.PaymentStatus),
		PartialAmount:    doc.PartialAmount,
		TotalAmount:      doc.TotalAmount,
		TotalNetQuantity: doc.TotalNetQuantity,
		TransportPlate:   doc.TransportPlate,
		Carrier:          doc.Carrier,
		DeletionMark:     doc.DeletionMark,
		Version:          doc.Version,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if doc.RegisterID != nil {
		s := doc.RegisterID.String()
		resp.RegisterID = &s
	}
	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, SaleLineResponse{
			LineID:         line.LineID.String(),
			LineNo:         line.LineNo,
			MaterialID:     line.MaterialID.String(),
			GrossQuantity:  line.GrossQuantity,
			ImpurityWeight: line.ImpurityWeight,
			NetQuantity:    line.NetQuantity(),
			UnitPrice:      line.UnitPrice,
			Amount:         line.Amount,
		})
	}
	return resp
}
