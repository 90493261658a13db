package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboardService: dashboardService}
}

// Stats returns the caller's dashboard counters.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(h.GetDB(c), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, stats)
}
