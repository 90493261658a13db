package repositories

import (
	"errors"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	FindByParty(db *gorm.DB, userID string) ([]models.Message, error)
	CountByParty(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, id string) error
}

type messageRepository struct{}

func NewMessageRepository() MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindByParty(db *gorm.DB, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "image")
		}).
		Preload("Receiver", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "image")
		}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByParty(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkRead(db *gorm.DB, id string) error {
	return db.Model(&models.Message{}).Where("id = ?", id).
		Update("read", true).Error
}
