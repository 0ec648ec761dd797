package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/domain"
	"yardbook/internal/domain/catalogs/partner"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// PartnerHandler provides read access to the partner catalog.
type PartnerHandler struct {
	*BaseHandler
	service *partner.Service
}

// NewPartnerHandler creates a new partner handler.
func NewPartnerHandler(base *BaseHandler, service *partner.Service) *PartnerHandler {
	return &PartnerHandler{BaseHandler: base, service: service}
}

// PartnerResponse is the API shape of a partner.
type PartnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	FieldOffice bool   `json:"fieldOffice"`
	TaxCode     string `json:"taxCode,omitempty"`
}

func fromPartner(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Kind:        string(p.Kind),
		FieldOffice: p.FieldOffice,
		TaxCode:     p.TaxCode,
	}
}

// Get handles GET /catalogs/partners/:id.
func (h *PartnerHandler) Get(c *gin.Context) {
	partnerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), partnerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fromPartner(p))
}

// List handles GET /catalogs/partners.
func (h *PartnerHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]PartnerResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, fromPartner(p))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
