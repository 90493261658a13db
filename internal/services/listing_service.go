package services

import (
	"encoding/json"

	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListingService interface {
	List(db *gorm.DB, category string) ([]models.Listing, error)
	Create(db *gorm.DB, userID string, req *dto.CreateListingRequest) (*models.Listing, error)
}

type ListingServiceImpl struct {
	listingRepo repositories.ListingRepository
}

func NewListingService(listingRepo repositories.ListingRepository) ListingService {
	return &ListingServiceImpl{listingRepo: listingRepo}
}

func (s *ListingServiceImpl) List(db *gorm.DB, category string) ([]models.Listing, error) {
	listings, err := s.listingRepo.FindAll(db, category)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return listings, nil
}

func (s *ListingServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateListingRequest) (*models.Listing, error) {
	images := req.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	listing := &models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      datatypes.JSON(imagesJSON),
		Status:      models.ListingStatusActive,
		UserID:      userID,
	}
	if err := s.listingRepo.Create(db, listing); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return listing, nil
}
