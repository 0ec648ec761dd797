package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/domain/ledger"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for stock balances.
type StockHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *ledger.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// List handles GET /stock. Display lists show positive balances only;
// pass all=true for the full picture, negatives included.
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := h.TenantID(c)

	var (
		entries []ledger.StockEntry
		err     error
	)
	if c.Query("all") == "true" {
		entries, err = h.service.ListAllStock(ctx, tenantID)
	} else {
		entries, err = h.service.ListStock(ctx, tenantID)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockEntries(entries))
}

// ListAvailable handles GET /stock/available - the source picker for sales
// and dismantlings.
func (h *StockHandler) ListAvailable(c *gin.Context) {
	entries, err := h.service.ListAvailableStock(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockEntries(entries))
}
