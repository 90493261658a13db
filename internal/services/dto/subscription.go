package dto

import "concierge_backend/internal/models"

type CheckoutRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// SubscriptionStatusResponse reports the caller's current plan.
// Subscription is null for free accounts.
type SubscriptionStatusResponse struct {
	PlanID       string               `json:"planId"`
	Subscription *models.Subscription `json:"subscription"`
}

type DashboardStats struct {
	TotalRequests  int64                `json:"totalRequests"`
	ActiveListings int64                `json:"activeListings"`
	Messages       int64                `json:"messages"`
	Subscription   *models.Subscription `json:"subscription"`
}
