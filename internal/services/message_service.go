package services

import (
	"errors"

	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MessageService interface {
	Send(db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*models.Message, error)
	List(db *gorm.DB, userID string) ([]models.Message, error)
	MarkRead(db *gorm.DB, callerID, messageID string) error
}

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) MessageService {
	return &MessageServiceImpl{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *MessageServiceImpl) Send(db *gorm.DB, senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.NewBadRequestError("you cannot message yourself")
	}
	if _, err := s.userRepo.FindByID(db, req.ReceiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("message", "recipient not found")
		}
		return nil, apperrors.InternalError(err)
	}

	message := &models.Message{
		Content:    req.Content,
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return message, nil
}

func (s *MessageServiceImpl) List(db *gorm.DB, userID string) ([]models.Message, error) {
	messages, err := s.messageRepo.FindByParty(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// MarkRead flips the read flag. Only the receiver may do it.
func (s *MessageServiceImpl) MarkRead(db *gorm.DB, callerID, messageID string) error {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.NewNotFoundError("message", "message not found")
		}
		return apperrors.InternalError(err)
	}
	if message.ReceiverID != callerID {
		return apperrors.NewForbiddenError("only the recipient can mark a message read")
	}

	if err := s.messageRepo.MarkRead(db, messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
