package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"yardbook/internal/core/id"
	"yardbook/internal/domain"
	"yardbook/internal/domain/documents/dismantling"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// DismantlingHandler handles HTTP requests for dismantling documents.
type DismantlingHandler struct {
	*BaseHandler
	service *dismantling.Service
}

// NewDismantlingHandler creates a new dismantling handler.
func NewDismantlingHandler(base *BaseHandler, service *dismantling.Service) *DismantlingHandler {
	return &DismantlingHandler{BaseHandler: base, service: service}
}

// Create handles POST /documents/dismantlings.
func (h *DismantlingHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDismantlingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity(h.TenantID(c))
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromDismantling(doc))
}

// Get handles GET /documents/dismantlings/:id.
func (h *DismantlingHandler) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDismantling(doc))
}

// Delete handles DELETE /documents/dismantlings/:id. The ledger effects are
// left in place by default.
func (h *DismantlingHandler) Delete(c *gin.Context) {
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

// List handles GET /documents/dismantlings.
func (h *DismantlingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := dismantling.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if v := c.Query("sourceMaterialId"); v != "" {
		if materialID, err := id.Parse(v); err == nil {
			filter.SourceMaterialID = &materialID
		}
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

	items := make([]dto.DismantlingResponse, 0, len(result.Items))
	for _, doc := range result.Items {
		items = append(items, dto.FromDismantling(doc))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
