package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/domain/ledger"
)

// CreateAcquisitionRequest for creating an acquisition document.
type CreateAcquisitionRequest struct {
	SupplierID    string    `json:"supplierId" binding:"required,uuid"`
	Date          time.Time `json:"date" binding:"required"`
	ReceiptNumber string    `json:"receiptNumber"`
	Comment       string    `json:"comment"`

	PaymentStatus string          `json:"paymentStatus"`
	PartialAmount decimal.Decimal `json:"partialAmount"`

	Location   string  `json:"location" binding:"required"`
	ContractID *string `json:"contractId"`
	RegisterID *string `json:"registerId"`

	TransportPlate string `json:"transportPlate"`
	Carrier        string `json:"carrier"`

	Lines []AcquisitionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AcquisitionLineRequest is one line of an acquisition request.
type AcquisitionLineRequest struct {
	MaterialID      string          `json:"materialId" binding:"required,uuid"`
	GrossQuantity   types.Quantity  `json:"grossQuantity"`
	ImpurityPercent decimal.Decimal `json:"impurityPercent"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Visibility      string          `json:"visibility"`
}

// ToEntity converts the request to a domain document. Invalid IDs become
// nil values here; the domain Validate call surfaces them as field errors.
func (r CreateAcquisitionRequest) ToEntity(tenantID id.ID) *acquisition.Document {
	supplierID, _ := id.Parse(r.SupplierID)

	doc := acquisition.New(tenantID, supplierID, ledger.LocationType(r.Location))
	doc.Date = r.Date
	doc.ReceiptNumber = r.ReceiptNumber
	doc.Comment = r.Comment
	doc.PartialAmount = r.PartialAmount
	doc.TransportPlate = r.TransportPlate
	doc.Carrier = r.Carrier

	if r.PaymentStatus != "" {
		doc.PaymentStatus = documents.PaymentStatus(r.PaymentStatus)
	}
	if r.ContractID != nil {
		if contractID, err := id.Parse(*r.ContractID); err == nil {
			doc.ContractID = &contractID
		}
	}
	if r.RegisterID != nil {
		if registerID, err := id.Parse(*r.RegisterID); err == nil {
			doc.RegisterID = &registerID
		}
	}

	for _, line := range r.Lines {
		materialID, _ := id.Parse(line.MaterialID)
		visibility := acquisition.VisibilityNormal
		if line.Visibility != "" {
			visibility = acquisition.Visibility(line.Visibility)
		}
		doc.AddLine(materialID, line.GrossQuantity, line.ImpurityPercent, line.UnitPrice, visibility)
	}

	return doc
}

// UpdateAcquisitionRequest for updating an acquisition document.
type UpdateAcquisitionRequest struct {
	Date          *time.Time `json:"date"`
	ReceiptNumber *string    `json:"receiptNumber"`
	Comment       *string    `json:"comment"`

	PaymentStatus *string          `json:"paymentStatus"`
	PartialAmount *decimal.Decimal `json:"partialAmount"`

	RegisterID *string `json:"registerId"`

	TransportPlate *string `json:"transportPlate"`
	Carrier        *string `json:"carrier"`

	// Lines replace the document's lines wholesale when present.
	Lines []AcquisitionLineRequest `json:"lines"`
}

// ApplyTo applies non-nil fields to an existing document.
func (r UpdateAcquisitionRequest) ApplyTo(doc *acquisition.Document) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.ReceiptNumber != nil {
		doc.ReceiptNumber = *r.ReceiptNumber
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
			visibility := acquisition.VisibilityNormal
			if line.Visibility != "" {
				visibility = acquisition.Visibility(line.Visibility)
			}
			doc.AddLine(materialID, line.GrossQuantity, line.ImpurityPercent, line.UnitPrice, visibility)
		}
	}
}

// AcquisitionLineResponse is one line of an acquisition response.
type AcquisitionLineResponse struct {
	LineID          string          `json:"lineId"`
	LineNo          int             `json:"lineNo"`
	MaterialID      string          `json:"materialId"`
	GrossQuantity   types.Quantity  `json:"grossQuantity"`
	ImpurityPercent decimal.Decimal `json:"impurityPercent"`
	NetQuantity     types.Quantity  `json:"netQuantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Amount          decimal.Decimal `json:"amount"`
	Visibility      string          `json:"visibility"`
}

// AcquisitionResponse is the API shape of an acquisition document.
type AcquisitionResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Date          time.Time `json:"date"`
	SupplierID    string    `json:"supplierId"`
	ReceiptNumber string    `json:"receiptNumber"`
	Comment       string    `json:"comment,omitempty"`

	PaymentStatus string          `json:"paymentStatus"`
	PartialAmount decimal.Decimal `json:"partialAmount"`

	Location   string  `json:"location"`
	ContractID *string `json:"contractId,omitempty"`
	RegisterID *string `json:"registerId,omitempty"`

	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalNetQuantity types.Quantity  `json:"totalNetQuantity"`

	TransportPlate string `json:"transportPlate,omitempty"`
	Carrier        string `json:"carrier,omitempty"`

	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Lines []AcquisitionLineResponse `json:"lines,omitempty"`
}

// FromAcquisition converts a domain document to the API shape.
func FromAcquisition(doc *acquisition.Document) AcquisitionResponse {
	resp := AcquisitionResponse{
		ID:               doc.ID.String(),
		Number:           doc.Number,
		Date:             doc.Date,
		SupplierID:       doc.SupplierID.String(),
		ReceiptNumber:    doc.ReceiptNumber,
		Comment:          doc.Comment,
		PaymentStatus:    string(doc.PaymentStatus),
		PartialAmount:    doc.PartialAmount,
		Location:         string(doc.Location),
		TotalAmount:      doc.TotalAmount,
		TotalNetQuantity: doc.TotalNetQuantity,
		TransportPlate:   doc.TransportPlate,
		Carrier:          doc.Carrier,
		DeletionMark:     doc.DeletionMark,
		Version:          doc.Version,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if doc.ContractID != nil {
		s := doc.ContractID.String()
		resp.ContractID = &s
	}
	if doc.RegisterID != nil {
		s := doc.RegisterID.String()
		resp.RegisterID = &s
	}
	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, AcquisitionLineResponse{
			LineID:          line.LineID.String(),
			LineNo:          line.LineNo,
			MaterialID:      line.MaterialID.String(),
			GrossQuantity:   line.GrossQuantity,
			ImpurityPercent: line.ImpurityPercent,
			NetQuantity:     line.NetQuantity(),
			UnitPrice:       line.UnitPrice,
			Amount:          line.Amount,
			Visibility:      string(line.Visibility),
		})
	}
	return resp
}
