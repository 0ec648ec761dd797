package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/core/apperror"
	"yardbook/internal/domain/reconcile"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// ReconcileHandler answers "which payments belong to this document" queries.
type ReconcileHandler struct {
	*BaseHandler
	service *reconcile.Service
}

// NewReconcileHandler creates a new reconciliation handler.
func NewReconcileHandler(base *BaseHandler, service *reconcile.Service) *ReconcileHandler {
	return &ReconcileHandler{BaseHandler: base, service: service}
}

// LinkedPayments handles GET /reconcile/payments?ref=<token>.
func (h *ReconcileHandler) LinkedPayments(c *gin.Context) {
	token := c.Query("ref")
	if token == "" {
		h.Error(c, apperror.NewValidation("ref query parameter is required"))
		return
	}

	records, err := h.service.LinkedPayments(c.Request.Context(), h.TenantID(c), token)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpenseRecords(records))
}

// LinkedCollections handles GET /reconcile/collections?ref=<token>.
func (h *ReconcileHandler) LinkedCollections(c *gin.Context) {
	token := c.Query("ref")
	if token == "" {
		h.Error(c, apperror.NewValidation("ref query parameter is required"))
		return
	}

	records, err := h.service.LinkedCollections(c.Request.Context(), h.TenantID(c), token)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpenseRecords(records))
}

// RecordsForDocument handles GET /reconcile/documents/:id - the explicit
// source_document_id link, for rows written by this system.
func (h *ReconcileHandler) RecordsForDocument(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.service.RecordsForDocument(c.Request.Context(), h.TenantID(c), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpenseRecords(records))
}
