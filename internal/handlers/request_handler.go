package handlers

import (
	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	*BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService) *RequestHandler {
	return &RequestHandler{BaseHandler: base, requestService: requestService}
}

// Create opens a pending service request against a concierge.
// POST /api/requests
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	request, err := h.requestService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// List returns the caller's requests, newest first.
// GET /api/requests?status=<status>
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.List(h.GetDB(c), userID, c.Query("status"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, requests)
}

// UpdateStatus moves a request along its lifecycle.
// PUT /api/requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	request, err := h.requestService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, request)
}
