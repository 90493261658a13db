package dto

type CreateReviewRequest struct {
	ConciergeID string `json:"conciergeId" binding:"required"`
	Rating      int    `json:"rating" binding:"required" validate:"min=1,max=5"`
	Comment     string `json:"comment" binding:"required"`
}
