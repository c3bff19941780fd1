package repositories

import (
	"errors"

	"marketplace_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrBrandAlreadyExists = errors.New("brand profile already exists")
)

type BrandRepository interface {
	Create(db *gorm.DB, brand *models.Brand) error
	FindByID(db *gorm.DB, id string) (*models.Brand, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Brand, error)
	Update(db *gorm.DB, brand *models.Brand) error
}

type BrandRepositoryImpl struct{}

func NewBrandRepository() BrandRepository {
	return &BrandRepositoryImpl{}
}

func (r *BrandRepositoryImpl) Create(db *gorm.DB, brand *models.Brand) error {
	if err := db.Create(brand).Error; err != nil {
		if isDuplicate(err) {
			return ErrBrandAlreadyExists
		}
		return err
	}
	return nil
}

func (r *BrandRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Brand, error) {
	var brand models.Brand
	if err := db.Preload("User").First(&brand, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}
	return &brand, nil
}

func (r *BrandRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Brand, error) {
	var brand models.Brand
	if err := db.Preload("User").First(&brand, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrBrandNotFound)
	}
	return &brand, nil
}

// Update writes the profile columns only, never the preloaded user.
func (r *BrandRepositoryImpl) Update(db *gorm.DB, brand *models.Brand) error {
	return db.Model(brand).Select("company_name", "website", "description", "industry", "logo", "status", "updated_at").
		Updates(brand).Error
}
