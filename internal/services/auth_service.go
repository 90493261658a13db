package services

import (
	"errors"

	"concierge_backend/internal/auth"
	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, userID string) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
}

func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService) AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if role != models.UserRoleClient && role != models.UserRoleConcierge {
		return nil, apperrors.NewBadRequestError("invalid role")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		// Concierges get an empty profile row up front so premium flags
		// have a place to land.
		if role == models.UserRoleConcierge {
			return s.userRepo.UpsertProfile(tx, &models.Profile{UserID: user.ID})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Reload with specialties for the token snapshot.
	user, err = s.userRepo.FindByID(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

// Refresh issues a fresh token from the current storage state, not from the
// presented token's snapshot.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, userID string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	specialties := make([]auth.SpecialtyClaim, 0, len(user.Specialties))
	for _, sp := range user.Specialties {
		specialties = append(specialties, auth.SpecialtyClaim{ID: sp.ID, Name: sp.Name})
	}

	token, err := s.jwtService.GenerateToken(&auth.Claims{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		Image:       user.Image,
		Bio:         user.Bio,
		Specialties: specialties,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}
