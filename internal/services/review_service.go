package services

import (
	"errors"

	"concierge_backend/internal/locks"
	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*models.Review, error)
	ListByConcierge(db *gorm.DB, conciergeID string) ([]models.Review, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
	ratingLocks *locks.KeyedMutex
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	ratingLocks *locks.KeyedMutex,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		ratingLocks: ratingLocks,
	}
}

// Create stores a review and recomputes the concierge's mean rating in the
// same transaction. The whole sequence holds the concierge's rating lock so
// two concurrent reviews cannot interleave their recomputes.
func (s *ReviewServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}
	if userID == req.ConciergeID {
		return nil, apperrors.NewBadRequestError("you cannot review yourself")
	}

	if _, err := s.userRepo.FindConciergeByID(db, req.ConciergeID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrConciergeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	unlock := s.ratingLocks.Lock(req.ConciergeID)
	defer unlock()

	review := &models.Review{
		Rating:      req.Rating,
		Comment:     req.Comment,
		UserID:      userID,
		ConciergeID: req.ConciergeID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.reviewRepo.ExistsByUserAndConcierge(tx, userID, req.ConciergeID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrReviewAlreadyExists
		}

		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		return s.reviewRepo.RecomputeConciergeRating(tx, req.ConciergeID)
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		// The unique index backs up the existence check.
		return nil, apperrors.InternalError(err)
	}

	return review, nil
}

func (s *ReviewServiceImpl) ListByConcierge(db *gorm.DB, conciergeID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindByConcierge(db, conciergeID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
