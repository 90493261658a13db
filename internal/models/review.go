package models

type Review struct {
	BaseModel
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"not null" json:"comment"`
	// One review per (user, concierge) pair.
	UserID      string `gorm:"not null;index;uniqueIndex:idx_reviews_user_concierge" json:"userId"`
	ConciergeID string `gorm:"not null;index;uniqueIndex:idx_reviews_user_concierge" json:"conciergeId"`

	User      User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Concierge User `gorm:"foreignKey:ConciergeID" json:"concierge,omitempty"`
}
