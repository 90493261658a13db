package models

type Message struct {
	BaseModel
	Content    string `gorm:"not null" json:"content"`
	SenderID   string `gorm:"not null;index" json:"senderId"`
	ReceiverID string `gorm:"not null;index" json:"receiverId"`
	Read       bool   `gorm:"default:false" json:"read"`

	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
