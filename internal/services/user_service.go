package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"concierge_backend/internal/logger"
	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/internal/storage"
	"concierge_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadImage(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.UploadImageResponse, error)
}

type UserServiceImpl struct {
	userRepo      repositories.UserRepository
	specialtyRepo repositories.SpecialtyRepository
	storage       storage.Storage
	maxUploadSize int64
	allowedTypes  []string
}

func NewUserService(
	userRepo repositories.UserRepository,
	specialtyRepo repositories.SpecialtyRepository,
	store storage.Storage,
	maxUploadSize int64,
	allowedTypes []string,
) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		specialtyRepo: specialtyRepo,
		storage:       store,
		maxUploadSize: maxUploadSize,
		allowedTypes:  allowedTypes,
	}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile changes the caller's own account. An email change is checked
// for collisions against other accounts first.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Email != "" && req.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(db, req.Email, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	user.Bio = req.Bio
	if req.Image != "" {
		user.Image = req.Image
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(tx, user); err != nil {
			return err
		}

		// Specialty sets only apply to concierges.
		if req.Specialties != nil && user.Role == models.UserRoleConcierge {
			specialties, err := s.specialtyRepo.FindByIDs(tx, req.Specialties)
			if err != nil {
				return err
			}
			if err := s.userRepo.ReplaceSpecialties(tx, user, specialties); err != nil {
				return err
			}
			user.Specialties = specialties
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) UploadImage(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.UploadImageResponse, error) {
	if file.Size > s.maxUploadSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("file exceeds the %d byte limit", s.maxUploadSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !s.typeAllowed(contentType) {
		return nil, apperrors.NewBadRequestError("unsupported file type: " + contentType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateImage(db, userID, url); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile image uploaded", "user_id", userID, "key", key)
	return &dto.UploadImageResponse{URL: url}, nil
}

func (s *UserServiceImpl) typeAllowed(contentType string) bool {
	for _, allowed := range s.allowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
