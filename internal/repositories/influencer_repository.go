package repositories

import (
	"errors"

	"marketplace_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInfluencerNotFound      = errors.New("influencer not found")
	ErrInfluencerAlreadyExists = errors.New("influencer profile already exists")
)

type InfluencerRepository interface {
	Create(db *gorm.DB, influencer *models.Influencer) error
	FindByUserID(db *gorm.DB, userID string) (*models.Influencer, error)
	Update(db *gorm.DB, influencer *models.Influencer) error
	UpdateInstagramStats(db *gorm.DB, influencerID string, stats models.InstagramStats) error
}

type InfluencerRepositoryImpl struct{}

func NewInfluencerRepository() InfluencerRepository {
	return &InfluencerRepositoryImpl{}
}

func (r *InfluencerRepositoryImpl) Create(db *gorm.DB, influencer *models.Influencer) error {
	if err := db.Create(influencer).Error; err != nil {
		if isDuplicate(err) {
			return ErrInfluencerAlreadyExists
		}
		return err
	}
	return nil
}

func (r *InfluencerRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Influencer, error) {
	var influencer models.Influencer
	if err := db.Preload("User").First(&influencer, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, ErrInfluencerNotFound)
	}
	return &influencer, nil
}

func (r *InfluencerRepositoryImpl) Update(db *gorm.DB, influencer *models.Influencer) error {
	return db.Model(influencer).Select("bio", "categories", "social_platforms", "status", "updated_at").
		Updates(influencer).Error
}

func (r *InfluencerRepositoryImpl) UpdateInstagramStats(db *gorm.DB, influencerID string, stats models.InstagramStats) error {
	result := db.Model(&models.Influencer{}).Where("id = ?", influencerID).
		Update("instagram_stats", datatypes.NewJSONType(stats))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInfluencerNotFound
	}
	return nil
}
