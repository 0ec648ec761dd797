package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/domain/cash"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// CashHandler handles HTTP requests for the cash subledger.
type CashHandler struct {
	*BaseHandler
	service *cash.Service
}

// NewCashHandler creates a new cash handler.
func NewCashHandler(base *BaseHandler, service *cash.Service) *CashHandler {
	return &CashHandler{BaseHandler: base, service: service}
}

// CreateRegister handles POST /cash/registers.
func (h *CashHandler) CreateRegister(c *gin.Context) {
	var req dto.CreateCashRegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reg := req.ToEntity(h.TenantID(c))
	if err := h.service.CreateRegister(c.Request.Context(), reg); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromCashRegister(reg))
}

// GetRegister handles GET /cash/registers/:id.
func (h *CashHandler) GetRegister(c *gin.Context) {
	registerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	reg, err := h.service.GetRegister(c.Request.Context(), registerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCashRegister(reg))
}

// ListRegisters handles GET /cash/registers.
func (h *CashHandler) ListRegisters(c *gin.Context) {
	registers, err := h.service.ListRegisters(c.Request.Context(), h.TenantID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.CashRegisterResponse, 0, len(registers))
	for _, reg := range registers {
		items = append(items, dto.FromCashRegister(reg))
	}

	h.OK(c, items)
}

// CreateTransaction handles POST /cash/transactions - manual movements.
func (h *CashHandler) CreateTransaction(c *gin.Context) {
	var req dto.CreateCashTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tx := req.ToEntity(h.TenantID(c))
	if err := h.service.RecordManualTransaction(c.Request.Context(), tx); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.NewIDResponse(tx.ID))
}

// DailySummary handles GET /cash/daily-summary?date=YYYY-MM-DD.
func (h *CashHandler) DailySummary(c *gin.Context) {
	day, ok := h.ParseDateQuery(c, "date")
	if !ok {
		return
	}

	balances, err := h.service.DailySummary(c.Request.Context(), h.TenantID(c), day)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDailyBalances(balances))
}
