package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// AcquisitionHandler handles HTTP requests for acquisition documents.
type AcquisitionHandler struct {
	*BaseHandler
	service *acquisition.Service
}

// NewAcquisitionHandler creates a new acquisition handler.
func NewAcquisitionHandler(base *BaseHandler, service *acquisition.Service) *AcquisitionHandler {
	return &AcquisitionHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/acquisitions.
func (h *AcquisitionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAcquisitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity(h.TenantID(c))
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromAcquisition(doc))
}

// Get handles GET /documents/acquisitions/:id.
func (h *AcquisitionHandler) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAcquisition(doc))
}

// Update handles PUT /documents/acquisitions/:id.
func (h *AcquisitionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAcquisitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAcquisition(doc))
}

// Delete handles DELETE /documents/acquisitions/:id.
func (h *AcquisitionHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /documents/acquisitions.
func (h *AcquisitionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := acquisition.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if v := c.Query("supplierId"); v != "" {
		if supplierID, err := id.Parse(v); err == nil {
			filter.SupplierID = &supplierID
		}
	}
	if v := c.Query("contractId"); v != "" {
		if contractID, err := id.Parse(v); err == nil {
			filter.ContractID = &contractID
		}
	}
	if v := c.Query("paymentStatus"); v != "" {
		status := documents.PaymentStatus(v)
		filter.PaymentStatus = &status
	}
	if v := c.Query("dateFrom"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := c.Query("dateTo"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}

	result, err := h.service.List(ctx, h.TenantID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AcquisitionResponse, 0, len(result.Items))
	for _, doc := range result.Items {
		items = append(items, dto.FromAcquisition(doc))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
