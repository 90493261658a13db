package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"concierge_backend/internal/logger"
	"concierge_backend/internal/payment"
	"concierge_backend/internal/services"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
	stripe              *payment.StripeService
}

func NewWebhookHandler(base *BaseHandler, subscriptionService services.SubscriptionService, stripe *payment.StripeService) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
		stripe:              stripe,
	}
}

// HandleStripe verifies the event signature against the raw body, then
// applies the event. The signature check runs before anything touches the
// database.
// POST /api/webhook
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("unreadable body"))
		return
	}

	header := c.GetHeader("Stripe-Signature")
	if err := h.stripe.VerifySignature(payload, header, time.Now()); err != nil {
		logger.Warn("webhook signature rejected", "error", err)
		apperrors.HandleError(c, apperrors.ErrBadWebhookSignature)
		return
	}

	var event payment.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("malformed event payload"))
		return
	}

	if err := h.subscriptionService.HandleEvent(h.GetDB(c), &event); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
