package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ConciergeHandler struct {
	*BaseHandler
	conciergeService services.ConciergeService
}

func NewConciergeHandler(base *BaseHandler, conciergeService services.ConciergeService) *ConciergeHandler {
	return &ConciergeHandler{BaseHandler: base, conciergeService: conciergeService}
}

// List returns the public concierge directory, best rated first.
// GET /api/concierges?specialty=<id>
func (h *ConciergeHandler) List(c *gin.Context) {
	items, err := h.conciergeService.List(h.GetDB(c), c.Query("specialty"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, items)
}

// Get returns one concierge profile with its reviews.
// GET /api/concierges/:id
func (h *ConciergeHandler) Get(c *gin.Context) {
	resp, err := h.conciergeService.GetProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, resp)
}

// Update changes a concierge's presentation. Only the concierge
// themselves may do it, whatever id is in the path.
// PUT /api/concierges/:id
func (h *ConciergeHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	if c.Param("id") != userID {
		apperrors.HandleError(c, apperrors.NewForbiddenError("You can only update your own profile"))
		return
	}

	var req dto.UpdateConciergeRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.conciergeService.Update(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, resp)
}
