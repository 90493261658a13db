package dto

import (
	"time"

	"concierge_backend/internal/models"
)

// ConciergeListItem is one row of the public concierge directory.
type ConciergeListItem struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Image       string             `json:"image,omitempty"`
	Bio         string             `json:"bio,omitempty"`
	Rating      float64            `json:"rating"`
	ReviewCount int64              `json:"reviewCount"`
	Specialties []models.Specialty `json:"specialties"`
}

type ReviewItem struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Author   `json:"author,omitempty"`
}

type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ConciergeProfileResponse is the detail view, reviews included.
type ConciergeProfileResponse struct {
	ConciergeListItem
	Reviews []ReviewItem `json:"reviews"`
}

type UpdateConciergeRequest struct {
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
}
