package dto

type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required" validate:"gt=0"`
	Category    string   `json:"category" binding:"required"`
	Images      []string `json:"images"`
}
