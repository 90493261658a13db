package services

import (
	"errors"

	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ConciergeService interface {
	List(db *gorm.DB, specialtyID string) ([]dto.ConciergeListItem, error)
	GetProfile(db *gorm.DB, id string) (*dto.ConciergeProfileResponse, error)
	Update(db *gorm.DB, userID string, req *dto.UpdateConciergeRequest) (*dto.UserResponse, error)
}

type ConciergeServiceImpl struct {
	userRepo      repositories.UserRepository
	reviewRepo    repositories.ReviewRepository
	specialtyRepo repositories.SpecialtyRepository
}

func NewConciergeService(
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	specialtyRepo repositories.SpecialtyRepository,
) ConciergeService {
	return &ConciergeServiceImpl{
		userRepo:      userRepo,
		reviewRepo:    reviewRepo,
		specialtyRepo: specialtyRepo,
	}
}

func (s *ConciergeServiceImpl) List(db *gorm.DB, specialtyID string) ([]dto.ConciergeListItem, error) {
	rows, err := s.userRepo.FindConcierges(db, specialtyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ConciergeListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, conciergeListItem(row))
	}
	return items, nil
}

func (s *ConciergeServiceImpl) GetProfile(db *gorm.DB, id string) (*dto.ConciergeProfileResponse, error) {
	user, err := s.userRepo.FindConciergeByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrConciergeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByConcierge(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	count, err := s.reviewRepo.CountByConcierge(db, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ConciergeProfileResponse{
		ConciergeListItem: conciergeListItem(repositories.ConciergeRow{User: *user, ReviewCount: count}),
		Reviews:           make([]dto.ReviewItem, 0, len(reviews)),
	}
	for _, rv := range reviews {
		item := dto.ReviewItem{
			ID:        rv.ID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		}
		if rv.User.ID != "" {
			item.Author = &dto.Author{ID: rv.User.ID, Name: rv.User.Name, Image: rv.User.Image}
		}
		resp.Reviews = append(resp.Reviews, item)
	}

	return resp, nil
}

// Update changes the caller's own concierge presentation (bio, specialty
// set). The specialty list replaces the previous one wholesale.
func (s *ConciergeServiceImpl) Update(db *gorm.DB, userID string, req *dto.UpdateConciergeRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrConciergeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleConcierge {
		return nil, apperrors.NewForbiddenError("only concierges can update a concierge profile")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user.Bio = req.Bio
		if err := s.userRepo.Update(tx, user); err != nil {
			return err
		}

		if req.Specialties != nil {
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
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

func conciergeListItem(row repositories.ConciergeRow) dto.ConciergeListItem {
	specialties := row.Specialties
	if specialties == nil {
		specialties = []models.Specialty{}
	}
	return dto.ConciergeListItem{
		ID:          row.ID,
		Name:        row.Name,
		Image:       row.Image,
		Bio:         row.Bio,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Specialties: specialties,
	}
}
