package models

// Product is a premium-gated marketplace item sold by a concierge.
type Product struct {
	BaseModel
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"not null;index" json:"category"`
	InStock     bool    `gorm:"default:true" json:"inStock"`
	ConciergeID string  `gorm:"not null;index" json:"conciergeId"`

	Concierge User `gorm:"foreignKey:ConciergeID" json:"concierge,omitempty"`
}

// Service is a premium-gated marketplace offering with a duration.
type Service struct {
	BaseModel
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"not null;index" json:"category"`
	Duration    int     `gorm:"default:60" json:"duration"` // minutes
	Available   bool    `gorm:"default:true" json:"available"`
	ConciergeID string  `gorm:"not null;index" json:"conciergeId"`

	Concierge User `gorm:"foreignKey:ConciergeID" json:"concierge,omitempty"`
}
