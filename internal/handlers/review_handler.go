package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

// Create stores a review and updates the concierge's mean rating.
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	review, err := h.reviewService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// ListByConcierge returns a concierge's reviews, newest first.
// GET /api/concierges/:id/reviews
func (h *ReviewHandler) ListByConcierge(c *gin.Context) {
	reviews, err := h.reviewService.ListByConcierge(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, reviews)
}
