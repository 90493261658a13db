package repositories

import (
	"errors"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("request not found")

type RequestRepository interface {
	Create(db *gorm.DB, request *models.Request) error
	FindByID(db *gorm.DB, id string) (*models.Request, error)
	FindByParty(db *gorm.DB, userID string, status models.RequestStatus) ([]models.Request, error)
	CountByParty(db *gorm.DB, userID string) (int64, error)
	UpdateStatus(db *gorm.DB, id string, status models.RequestStatus) error
}

type requestRepository struct{}

func NewRequestRepository() RequestRepository {
	return &requestRepository{}
}

func (r *requestRepository) Create(db *gorm.DB, request *models.Request) error {
	return db.Create(request).Error
}

func (r *requestRepository) FindByID(db *gorm.DB, id string) (*models.Request, error) {
	var request models.Request
	err := db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByParty returns requests where the user is requester or assigned
// concierge, newest first, optionally filtered by status.
func (r *requestRepository) FindByParty(db *gorm.DB, userID string, status models.RequestStatus) ([]models.Request, error) {
	query := db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Concierge", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("user_id = ? OR concierge_id = ?", userID, userID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.Request
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *requestRepository) CountByParty(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Request{}).
		Where("user_id = ? OR concierge_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) UpdateStatus(db *gorm.DB, id string, status models.RequestStatus) error {
	return db.Model(&models.Request{}).Where("id = ?", id).
		Update("status", status).Error
}
