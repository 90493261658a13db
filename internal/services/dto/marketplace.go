package dto

import "concierge_backend/internal/models"

type CreateMarketplaceItemRequest struct {
	Type        string  `json:"type" binding:"required" validate:"oneof=product service"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required" validate:"gt=0"`
	Category    string  `json:"category" binding:"required"`
	Image       string  `json:"image"`
	// Duration only applies to services, in minutes.
	Duration int `json:"duration" validate:"omitempty,gt=0"`
}

type MarketplaceResponse struct {
	Products []models.Product `json:"products"`
	Services []models.Service `json:"services"`
}
