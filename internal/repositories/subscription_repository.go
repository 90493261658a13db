package repositories

import (
	"errors"
	"time"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	FindActiveByUser(db *gorm.DB, userID string) (*models.Subscription, error)
	FindByStripeSubscriptionID(db *gorm.DB, stripeSubID string) (*models.Subscription, error)
	UpsertByUserID(db *gorm.DB, sub *models.Subscription) error
	Update(db *gorm.DB, sub *models.Subscription) error
	FindLapsedActive(db *gorm.DB, now time.Time) ([]models.Subscription, error)
}

type subscriptionRepository struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{}
}

func (r *subscriptionRepository) FindActiveByUser(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.First(&sub, "user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindByStripeSubscriptionID(db *gorm.DB, stripeSubID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.First(&sub, "stripe_subscription_id = ?", stripeSubID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// UpsertByUserID keys on the one-subscription-per-user invariant.
func (r *subscriptionRepository) UpsertByUserID(db *gorm.DB, sub *models.Subscription) error {
	var existing models.Subscription
	err := db.First(&existing, "user_id = ?", sub.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(sub).Error
	}
	if err != nil {
		return err
	}

	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	return db.Save(sub).Error
}

func (r *subscriptionRepository) Update(db *gorm.DB, sub *models.Subscription) error {
	return db.Save(sub).Error
}

// FindLapsedActive returns ACTIVE subscriptions whose period end has passed
// without a processor event. Consumed by the reconciliation sweep.
func (r *subscriptionRepository) FindLapsedActive(db *gorm.DB, now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Where("status = ? AND current_period_end < ?", models.SubscriptionStatusActive, now).
		Find(&subs).Error
	return subs, err
}
