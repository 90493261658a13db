package services

import (
	"concierge_backend/internal/models"
	"concierge_backend/internal/repositories"
	"concierge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SpecialtyService interface {
	List(db *gorm.DB) ([]models.Specialty, error)
}

type SpecialtyServiceImpl struct {
	specialtyRepo repositories.SpecialtyRepository
}

func NewSpecialtyService(specialtyRepo repositories.SpecialtyRepository) SpecialtyService {
	return &SpecialtyServiceImpl{specialtyRepo: specialtyRepo}
}

func (s *SpecialtyServiceImpl) List(db *gorm.DB) ([]models.Specialty, error) {
	specialties, err := s.specialtyRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if specialties == nil {
		specialties = []models.Specialty{}
	}
	return specialties, nil
}
