package repositories

import (
	"errors"
	"strings"

	"concierge_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ConciergeRow is a User plus the derived count of reviews received.
type ConciergeRow struct {
	models.User
	ReviewCount int64 `json:"reviewCount"`
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByIDWithEntitlements(db *gorm.DB, id string) (*models.User, error)
	FindConciergeByID(db *gorm.DB, id string) (*models.User, error)
	FindConcierges(db *gorm.DB, specialtyID string) ([]ConciergeRow, error)
	EmailTaken(db *gorm.DB, email, excludeUserID string) (bool, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateImage(db *gorm.DB, userID, imageURL string) error
	UpdateRole(db *gorm.DB, userID string, role models.UserRole) error
	ReplaceSpecialties(db *gorm.DB, user *models.User, specialties []models.Specialty) error
	UpsertProfile(db *gorm.DB, profile *models.Profile) error
	UpsertPremiumFeatures(db *gorm.DB, features *models.PremiumFeatures) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Specialties").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByIDWithEntitlements loads the user with premium features and profile,
// the authoritative source for role/entitlement checks.
func (r *userRepository) FindByIDWithEntitlements(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("PremiumFeatures").Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindConciergeByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Specialties").Preload("Profile").
		First(&user, "id = ? AND role = ?", id, models.UserRoleConcierge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindConcierges lists concierges sorted by rating descending, optionally
// filtered by specialty, with the derived review count inlined.
func (r *userRepository) FindConcierges(db *gorm.DB, specialtyID string) ([]ConciergeRow, error) {
	query := db.Model(&models.User{}).
		Select("users.*, (SELECT COUNT(*) FROM reviews WHERE reviews.concierge_id = users.id) AS review_count").
		Where("users.role = ?", models.UserRoleConcierge)

	if specialtyID != "" && specialtyID != "all" {
		query = query.
			Joins("JOIN user_specialties ON user_specialties.user_id = users.id").
			Where("user_specialties.specialty_id = ?", specialtyID)
	}

	var rows []ConciergeRow
	if err := query.Order("users.rating DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	// Attach specialty names for the list payload.
	for i := range rows {
		if err := db.Model(&rows[i].User).Association("Specialties").Find(&rows[i].Specialties); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

func (r *userRepository) EmailTaken(db *gorm.DB, email, excludeUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	return db.Model(user).
		Select("Name", "Email", "Bio", "Image").
		Updates(user).Error
}

func (r *userRepository) UpdateImage(db *gorm.DB, userID, imageURL string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("image", imageURL).Error
}

func (r *userRepository) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("role", role).Error
}

// ReplaceSpecialties overwrites the full specialty set (set semantics).
func (r *userRepository) ReplaceSpecialties(db *gorm.DB, user *models.User, specialties []models.Specialty) error {
	return db.Model(user).Association("Specialties").Replace(specialties)
}

func (r *userRepository) UpsertProfile(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	err := db.First(&existing, "user_id = ?", profile.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(profile).Error
	}
	if err != nil {
		return err
	}

	// Rating is owned by review recomputation and never written here.
	return db.Model(&existing).
		Select("IsVerified", "IsPremium", "FeaturedListing", "EnhancedVisibility", "PremiumBadge").
		Updates(profile).Error
}

func (r *userRepository) UpsertPremiumFeatures(db *gorm.DB, features *models.PremiumFeatures) error {
	var existing models.PremiumFeatures
	err := db.First(&existing, "user_id = ?", features.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(features).Error
	}
	if err != nil {
		return err
	}

	features.ID = existing.ID
	return db.Save(features).Error
}

// isDuplicateKeyError matches unique-constraint violations for both
// supported drivers (postgres 23505, mysql 1062).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "1062") ||
		strings.Contains(msg, "duplicate key")
}
