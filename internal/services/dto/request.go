package dto

type CreateRequestRequest struct {
	ConciergeID string `json:"conciergeId" binding:"required"`
	Service     string `json:"service" binding:"required"`
	Details     string `json:"details" binding:"required"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
