package models

import "time"

// Subscription mirrors the payment processor's state. Written only by the
// payment event bridge and the expiry sweep.
type Subscription struct {
	BaseModel
	UserID               string             `gorm:"uniqueIndex;not null" json:"userId"`
	PlanID               string             `gorm:"not null" json:"planId"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StripeCustomerID     string             `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string             `gorm:"uniqueIndex" json:"stripeSubscriptionId,omitempty"`
	CurrentPeriodStart   time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time          `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool               `gorm:"default:false" json:"cancelAtPeriodEnd"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
