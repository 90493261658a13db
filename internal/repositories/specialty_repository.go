package repositories

import (
	"errors"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	FindAll(db *gorm.DB) ([]models.Specialty, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Specialty, error)
	UpsertByName(db *gorm.DB, name string) error
}

type specialtyRepository struct{}

func NewSpecialtyRepository() SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) FindAll(db *gorm.DB) ([]models.Specialty, error) {
	var specialties []models.Specialty
	err := db.Order("name ASC").Find(&specialties).Error
	return specialties, err
}

func (r *specialtyRepository) FindByIDs(db *gorm.DB, ids []string) ([]models.Specialty, error) {
	var specialties []models.Specialty
	if len(ids) == 0 {
		return specialties, nil
	}
	err := db.Where("id IN ?", ids).Find(&specialties).Error
	return specialties, err
}

// UpsertByName creates the specialty only when the name is not yet present.
// Used by the startup seeder.
func (r *specialtyRepository) UpsertByName(db *gorm.DB, name string) error {
	var existing models.Specialty
	err := db.First(&existing, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.Specialty{Name: name}).Error
	}
	return err
}
