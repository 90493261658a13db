package repositories

import (
	"errors"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	Create(db *gorm.DB, listing *models.Listing) error
	FindAll(db *gorm.DB, category string) ([]models.Listing, error)
	FindByID(db *gorm.DB, id string) (*models.Listing, error)
	CountActiveByUser(db *gorm.DB, userID string) (int64, error)
}

type listingRepository struct{}

func NewListingRepository() ListingRepository {
	return &listingRepository{}
}

func (r *listingRepository) Create(db *gorm.DB, listing *models.Listing) error {
	return db.Create(listing).Error
}

// FindAll returns listings newest first with owner name and rating inlined,
// optionally filtered by category.
func (r *listingRepository) FindAll(db *gorm.DB, category string) ([]models.Listing, error) {
	query := db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "rating")
	})

	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var listings []models.Listing
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *listingRepository) FindByID(db *gorm.DB, id string) (*models.Listing, error) {
	var listing models.Listing
	err := db.Preload("User").First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) CountActiveByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Listing{}).
		Where("user_id = ? AND status = ?", userID, models.ListingStatusActive).
		Count(&count).Error
	return count, err
}
