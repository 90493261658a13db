package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SpecialtyHandler struct {
	*BaseHandler
	specialtyService services.SpecialtyService
}

func NewSpecialtyHandler(base *BaseHandler, specialtyService services.SpecialtyService) *SpecialtyHandler {
	return &SpecialtyHandler{BaseHandler: base, specialtyService: specialtyService}
}

// List returns every specialty, sorted by name.
// GET /api/specialties
func (h *SpecialtyHandler) List(c *gin.Context) {
	specialties, err := h.specialtyService.List(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, specialties)
}
