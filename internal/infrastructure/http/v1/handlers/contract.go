package handlers

import (
	"github.com/gin-gonic/gin"

	"yardbook/internal/domain"
	"yardbook/internal/domain/catalogs/contract"
	"yardbook/internal/infrastructure/http/v1/dto"
)

// ContractHandler provides read access to the contract catalog.
type ContractHandler struct {
	*BaseHandler
	service *contract.Service
}

// NewContractHandler creates a new contract handler.
func NewContractHandler(base *BaseHandler, service *contract.Service) *ContractHandler {
	return &ContractHandler{BaseHandler: base, service: service}
}

// ContractResponse is the API shape of a contract.
type ContractResponse struct {
	ID        string `json:"id"`
	PartnerID string `json:"partnerId"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}

func fromContract(c *contract.Contract) ContractResponse {
	return ContractResponse{
		ID:        c.ID.String(),
		PartnerID: c.PartnerID.String(),
		Name:      c.Name,
		Active:    c.Active,
	}
}

// Get handles GET /catalogs/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	contractID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), contractID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fromContract(ct))
}

// List handles GET /catalogs/contracts.
func (h *ContractHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.List(c.Request.Context(), h.TenantID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]ContractResponse, 0, len(result.Items))
	for _, ct := range result.Items {
		items = append(items, fromContract(ct))
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
