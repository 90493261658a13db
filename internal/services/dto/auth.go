package dto

import (
	"time"

	"concierge_backend/internal/models"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required" validate:"oneof=CLIENT CONCIERGE"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public user shape. It never carries the password
// hash.
type UserResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        models.UserRole    `json:"role"`
	Image       string             `json:"image,omitempty"`
	Bio         string             `json:"bio,omitempty"`
	Rating      float64            `json:"rating"`
	Specialties []models.Specialty `json:"specialties,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Image:       user.Image,
		Bio:         user.Bio,
		Rating:      user.Rating,
		Specialties: user.Specialties,
		CreatedAt:   user.CreatedAt,
	}
}
