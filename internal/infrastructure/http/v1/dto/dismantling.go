package dto

import (
	"time"

	"yardbook/internal/core/id"
	"yardbook/internal/core/types"
	"yardbook/internal/domain/documents/dismantling"
	"yardbook/internal/domain/ledger"
)

// CreateDismantlingRequest for creating a dismantling document.
type CreateDismantlingRequest struct {
	Date             time.Time `json:"date" binding:"required"`
	SourceMaterialID string    `json:"sourceMaterialId" binding:"required,uuid"`
	SourceQuantity   types.Quantity `json:"sourceQuantity"`
	Comment          string    `json:"comment"`

	Location   string  `json:"location"`
	ContractID *string `json:"contractId"`

	Outputs []DismantlingOutputRequest `json:"outputs" binding:"required,min=1,dive"`
}

// DismantlingOutputRequest is one output of a dismantling request.
type DismantlingOutputRequest struct {
	MaterialID string         `json:"materialId" binding:"required,uuid"`
	Quantity   types.Quantity `json:"quantity"`
}

// ToEntity converts the request to a domain document.
func (r CreateDismantlingRequest) ToEntity(tenantID id.ID) *dismantling.Document {
	sourceMaterialID, _ := id.Parse(r.SourceMaterialID)

	doc := dismantling.New(tenantID, sourceMaterialID, r.SourceQuantity)
	doc.Date = r.Date
	doc.Comment = r.Comment

	if r.Location != "" {
		doc.Location = ledger.LocationType(r.Location)
	}
	if r.ContractID != nil {
		if contractID, err := id.Parse(*r.ContractID); err == nil {
			doc.ContractID = &contractID
		}
	}

	for _, out := range r.Outputs {
		materialID, _ := id.Parse(out.MaterialID)
		doc.AddOutput(materialID, out.Quantity)
	}

	return doc
}

// DismantlingOutputResponse is one output of a dismantling response.
type DismantlingOutputResponse struct {
	OutputID   string         `json:"outputId"`
	LineNo     int            `json:"lineNo"`
	MaterialID string         `json:"materialId"`
	Quantity   types.Quantity `json:"quantity"`
}

// DismantlingResponse is the API shape of a dismantling document.
type DismantlingResponse struct {
	ID     string    `json:"id"`
	Number string    `json:"number"`
	Date   time.Time `json:"date"`

	SourceMaterialID string         `json:"sourceMaterialId"`
	SourceQuantity   types.Quantity `json:"sourceQuantity"`

	Location   string  `json:"location"`
	ContractID *string `json:"contractId,omitempty"`
	Comment    string  `json:"comment,omitempty"`

	TotalOutputQuantity types.Quantity `json:"totalOutputQuantity"`

	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Outputs []DismantlingOutputResponse `json:"outputs,omitempty"`
}

// FromDismantling converts a domain document to the API shape.
func FromDismantling(doc *dismantling.Document) DismantlingResponse {
	resp := DismantlingResponse{
		ID:                  doc.ID.String(),
		Number:              doc.Number,
		Date:                doc.Date,
		SourceMaterialID:    doc.SourceMaterialID.String(),
		SourceQuantity:      doc.SourceQuantity,
		Location:            string(doc.Location),
		Comment:             doc.Comment,
		TotalOutputQuantity: doc.TotalOutputQuantity(),
		DeletionMark:        doc.DeletionMark,
		Version:             doc.Version,
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
	}
	if doc.ContractID != nil {
		s := doc.ContractID.String()
		resp.ContractID = &s
	}
	for _, out := range doc.Outputs {
		resp.Outputs = append(resp.Outputs, DismantlingOutputResponse{
			OutputID:   out.OutputID.String(),
			LineNo:     out.LineNo,
			MaterialID: out.MaterialID.String(),
			Quantity:   out.Quantity,
		})
	}
	return resp
}
