package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	*BaseHandler
	marketplaceService services.MarketplaceService
}

func NewMarketplaceHandler(base *BaseHandler, marketplaceService services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{BaseHandler: base, marketplaceService: marketplaceService}
}

// List returns available products and services.
// GET /api/marketplace
func (h *MarketplaceHandler) List(c *gin.Context) {
	resp, err := h.marketplaceService.List(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, resp)
}

// Create publishes a product or service. Premium concierge only; the gate
// runs against storage inside the service.
// POST /api/marketplace
func (h *MarketplaceHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMarketplaceItemRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	item, err := h.marketplaceService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, item)
}
