package models

import "gorm.io/datatypes"

type Listing struct {
	BaseModel
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"not null;index" json:"category"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"` // array of URLs
	Status      ListingStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	UserID      string         `gorm:"not null;index" json:"userId"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
