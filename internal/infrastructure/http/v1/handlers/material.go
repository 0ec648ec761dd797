package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/domain"
	"yardbook/internal/domain/catalogs/material"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// MaterialHandler provides read access to the material catalog.
type MaterialHandler struct {
	*BaseHandler
	service *material.Service
}

// NewMaterialHandler creates a new material handler.
func NewMaterialHandler(base *BaseHandler, service *material.Service) *MaterialHandler {
	return &MaterialHandler{BaseHandler: base, service: service}
}

// MaterialResponse is the API shape of a material.
type MaterialResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

func fromMaterial(m *material.Material) MaterialResponse {
	return MaterialResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Category: m.Category,
		Unit:     m.Unit,
	}
}

// Get handles GET /catalogs/materials/:id.
func (h *MaterialHandler) Get(c *gin.Context) {
	materialID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), materialID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fromMaterial(m))
}

// List handles GET /catalogs/materials.
func (h *MaterialHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]MaterialResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, fromMaterial(m))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
