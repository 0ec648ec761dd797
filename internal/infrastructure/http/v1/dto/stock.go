package dto

import (
	"time"

	"yardbook/internal/core/types"
	"yardbook/internal/domain/ledger"
)

// StockEntryResponse is the API shape of one stock balance.
type StockEntryResponse struct {
	MaterialID string         `json:"materialId"`
	Location   string         `json:"location"`
	ContractID *string        `json:"contractId,omitempty"`
	Quantity   types.Quantity `json:"quantity"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// FromStockEntry converts a domain entry to the API shape.
func FromStockEntry(e ledger.StockEntry) StockEntryResponse {
	resp := StockEntryResponse{
		MaterialID: e.MaterialID.String(),
		Location:   string(e.Location),
		Quantity:   e.Quantity,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.ContractID != nil {
		s := e.ContractID.String()
		resp.ContractID = &s
	}
	return resp
}

// FromStockEntries converts a slice of entries.
func FromStockEntries(entries []ledger.StockEntry) []StockEntryResponse {
	out := make([]StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromStockEntry(e))
	}
	return out
}
