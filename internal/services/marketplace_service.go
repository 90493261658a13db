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

type MarketplaceService interface {
	List(db *gorm.DB) (*dto.MarketplaceResponse, error)
	Create(db *gorm.DB, userID string, req *dto.CreateMarketplaceItemRequest) (interface{}, error)
}

type MarketplaceServiceImpl struct {
	marketplaceRepo repositories.MarketplaceRepository
	userRepo        repositories.UserRepository
	listingLocks    *locks.KeyedMutex
}

func NewMarketplaceService(
	marketplaceRepo repositories.MarketplaceRepository,
	userRepo repositories.UserRepository,
	listingLocks *locks.KeyedMutex,
) MarketplaceService {
	return &MarketplaceServiceImpl{
		marketplaceRepo: marketplaceRepo,
		userRepo:        userRepo,
		listingLocks:    listingLocks,
	}
}

func (s *MarketplaceServiceImpl) List(db *gorm.DB) (*dto.MarketplaceResponse, error) {
	products, err := s.marketplaceRepo.FindProductsInStock(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	services, err := s.marketplaceRepo.FindServicesAvailable(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if products == nil {
		products = []models.Product{}
	}
	if services == nil {
		services = []models.Service{}
	}
	return &dto.MarketplaceResponse{Products: products, Services: services}, nil
}

// Create publishes a product or service for a premium concierge. Role and
// entitlements are re-read from storage, never trusted from the token, and
// the count-against-ceiling check runs inside a per-concierge critical
// section so parallel creates cannot both pass the same ceiling.
func (s *MarketplaceServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateMarketplaceItemRequest) (interface{}, error) {
	user, err := s.userRepo.FindByIDWithEntitlements(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Role != models.UserRoleConcierge || user.PremiumFeatures == nil {
		return nil, apperrors.ErrPremiumRequired
	}

	switch req.Type {
	case "product":
		if !user.PremiumFeatures.CanSellProducts {
			return nil, apperrors.ErrPremiumRequired
		}
		return s.createProduct(db, user, req)
	case "service":
		if !user.PremiumFeatures.CanOfferServices {
			return nil, apperrors.ErrPremiumRequired
		}
		return s.createService(db, user, req)
	default:
		return nil, apperrors.NewBadRequestError("type must be product or service")
	}
}

func (s *MarketplaceServiceImpl) createProduct(db *gorm.DB, user *models.User, req *dto.CreateMarketplaceItemRequest) (*models.Product, error) {
	unlock := s.listingLocks.Lock(user.ID)
	defer unlock()

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		InStock:     true,
		ConciergeID: user.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		count, err := s.marketplaceRepo.CountProductsByConcierge(tx, user.ID)
		if err != nil {
			return err
		}
		if count >= int64(user.PremiumFeatures.MaxProductListings) {
			return apperrors.ErrProductLimitReached
		}
		return s.marketplaceRepo.CreateProduct(tx, product)
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}

	return product, nil
}

func (s *MarketplaceServiceImpl) createService(db *gorm.DB, user *models.User, req *dto.CreateMarketplaceItemRequest) (*models.Service, error) {
	unlock := s.listingLocks.Lock(user.ID)
	defer unlock()

	duration := req.Duration
	if duration <= 0 {
		duration = 60
	}

	service := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Duration:    duration,
		Available:   true,
		ConciergeID: user.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		count, err := s.marketplaceRepo.CountServicesByConcierge(tx, user.ID)
		if err != nil {
			return err
		}
		if count >= int64(user.PremiumFeatures.MaxServiceListings) {
			return apperrors.ErrServiceLimitReached
		}
		return s.marketplaceRepo.CreateService(tx, service)
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}

	return service, nil
}
