package repositories

import (
	"errors"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	ExistsByUserAndConcierge(db *gorm.DB, userID, conciergeID string) (bool, error)
	FindByConcierge(db *gorm.DB, conciergeID string) ([]models.Review, error)
	CountByConcierge(db *gorm.DB, conciergeID string) (int64, error)
	RecomputeConciergeRating(db *gorm.DB, conciergeID string) error
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) ExistsByUserAndConcierge(db *gorm.DB, userID, conciergeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("user_id = ? AND concierge_id = ?", userID, conciergeID).
		Count(&count).Error
	return count > 0, err
}

// FindByConcierge returns reviews newest first with the reviewer's name.
func (r *reviewRepository) FindByConcierge(db *gorm.DB, conciergeID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("concierge_id = ?", conciergeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByConcierge(db *gorm.DB, conciergeID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("concierge_id = ?", conciergeID).
		Count(&count).Error
	return count, err
}

// RecomputeConciergeRating derives the aggregate from the review table in a
// single statement, so the mean always reflects the committed review set.
// COALESCE guards the empty-set case. The profile cache is kept in step.
func (r *reviewRepository) RecomputeConciergeRating(db *gorm.DB, conciergeID string) error {
	err := db.Exec(`
		UPDATE users
		SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE concierge_id = ?), 0)
		WHERE id = ?
	`, conciergeID, conciergeID).Error
	if err != nil {
		return err
	}

	return db.Exec(`
		UPDATE profiles
		SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE concierge_id = ?), 0)
		WHERE user_id = ?
	`, conciergeID, conciergeID).Error
}
