package dto

type UpdateProfileRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Bio         string   `json:"bio"`
	Image       string   `json:"image"`
	Specialties []string `json:"specialties"`
}

type UploadImageResponse struct {
	URL string `json:"imageUrl"`
}
