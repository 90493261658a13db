package models

// Request is a service booking between a client and a concierge. Status
// changes go through the transition table in statuses.go only.
type Request struct {
	BaseModel
	Service     string        `gorm:"not null" json:"service"`
	Details     string        `gorm:"not null" json:"details"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	UserID      string        `gorm:"not null;index" json:"userId"`
	ConciergeID string        `gorm:"not null;index" json:"conciergeId"`

	User      User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Concierge User `gorm:"foreignKey:ConciergeID" json:"concierge,omitempty"`
}
