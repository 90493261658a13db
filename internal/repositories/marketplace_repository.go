package repositories

import (
	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

type MarketplaceRepository interface {
	CreateProduct(db *gorm.DB, product *models.Product) error
	CreateService(db *gorm.DB, service *models.Service) error
	CountProductsByConcierge(db *gorm.DB, conciergeID string) (int64, error)
	CountServicesByConcierge(db *gorm.DB, conciergeID string) (int64, error)
	FindProductsInStock(db *gorm.DB) ([]models.Product, error)
	FindServicesAvailable(db *gorm.DB) ([]models.Service, error)
}

type marketplaceRepository struct{}

func NewMarketplaceRepository() MarketplaceRepository {
	return &marketplaceRepository{}
}

func (r *marketplaceRepository) CreateProduct(db *gorm.DB, product *models.Product) error {
	return db.Create(product).Error
}

func (r *marketplaceRepository) CreateService(db *gorm.DB, service *models.Service) error {
	return db.Create(service).Error
}

func (r *marketplaceRepository) CountProductsByConcierge(db *gorm.DB, conciergeID string) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).
		Where("concierge_id = ?", conciergeID).
		Count(&count).Error
	return count, err
}

func (r *marketplaceRepository) CountServicesByConcierge(db *gorm.DB, conciergeID string) (int64, error) {
	var count int64
	err := db.Model(&models.Service{}).
		Where("concierge_id = ?", conciergeID).
		Count(&count).Error
	return count, err
}

func (r *marketplaceRepository) FindProductsInStock(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.Preload("Concierge", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "image", "rating")
	}).Where("in_stock = ?", true).Find(&products).Error
	return products, err
}

func (r *marketplaceRepository) FindServicesAvailable(db *gorm.DB) ([]models.Service, error) {
	var services []models.Service
	err := db.Preload("Concierge", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "image", "rating")
	}).Where("available = ?", true).Find(&services).Error
	return services, err
}
