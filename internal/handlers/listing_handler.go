package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{BaseHandler: base, listingService: listingService}
}

// List returns listings newest first, optionally filtered by category.
// GET /api/listings?category=<name>
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingService.List(h.GetDB(c), c.Query("category"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, listings)
}

// Create publishes a listing owned by the caller.
// POST /api/listings
func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	listing, err := h.listingService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.Created(c, listing)
}
