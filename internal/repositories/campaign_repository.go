package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"marketplace_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("influencer already applied to campaign")
)

type CampaignFilter struct {
	Category string
	Platform string
	Page     int
	PageSize int
}

type CampaignRepository interface {
	Create(db *gorm.DB, campaign *models.Campaign) error
	FindByID(db *gorm.DB, id string) (*models.Campaign, error)
	FindActive(db *gorm.DB, filter CampaignFilter) ([]models.Campaign, int64, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	CloseExpired(db *gorm.DB, now time.Time) (int64, error)

	// Applications
	CreateApplication(db *gorm.DB, application *models.CampaignApplication) error
	FindApplication(db *gorm.DB, campaignID, applicationID string) (*models.CampaignApplication, error)
	UpdateApplicationStatus(db *gorm.DB, applicationID string, status models.ApplicationStatus) error
}

type CampaignRepositoryImpl struct{}

func NewCampaignRepository() CampaignRepository {
	return &CampaignRepositoryImpl{}
}

func (r *CampaignRepositoryImpl) Create(db *gorm.DB, campaign *models.Campaign) error {
	return db.Omit("Brand", "Proposals").Create(campaign).Error
}

// FindByID loads the campaign with its brand and applications, oldest application first.
func (r *CampaignRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := db.Preload("Brand").
		Preload("Proposals", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at ASC")
		}).
		Preload("Proposals.Influencer").
		First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrCampaignNotFound)
	}
	return &campaign, nil
}

// FindActive returns one page of active campaigns, newest first.
func (r *CampaignRepositoryImpl) FindActive(db *gorm.DB, filter CampaignFilter) ([]models.Campaign, int64, error) {
	filtered := func() *gorm.DB {
		query := db.Model(&models.Campaign{}).Where("status = ?", models.CampaignStatusActive)
		if filter.Category != "" {
			query = jsonArrayContains(query, "categories", filter.Category)
		}
		if filter.Platform != "" {
			query = jsonArrayContains(query, "platforms", filter.Platform)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	var campaigns []models.Campaign
	err := filtered().Preload("Brand").
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&campaigns).Error
	return campaigns, total, err
}

func (r *CampaignRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Campaign{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// CloseExpired moves active campaigns past their deadline to closed.
func (r *CampaignRepositoryImpl) CloseExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Campaign{}).
		Where("status = ? AND deadline < ?", models.CampaignStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.CampaignStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *CampaignRepositoryImpl) CreateApplication(db *gorm.DB, application *models.CampaignApplication) error {
	if err := db.Omit("Influencer").Create(application).Error; err != nil {
		if isDuplicate(err) {
			return ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *CampaignRepositoryImpl) FindApplication(db *gorm.DB, campaignID, applicationID string) (*models.CampaignApplication, error) {
	var application models.CampaignApplication
	err := db.First(&application, "id = ? AND campaign_id = ?", applicationID, campaignID).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &application, nil
}

func (r *CampaignRepositoryImpl) UpdateApplicationStatus(db *gorm.DB, applicationID string, status models.ApplicationStatus) error {
	result := db.Model(&models.CampaignApplication{}).Where("id = ?", applicationID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// jsonArrayContains filters rows whose JSON string-array column holds value.
// Postgres stores the column as jsonb; sqlite (tests) as JSON text.
func jsonArrayContains(db *gorm.DB, column, value string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		needle, _ := json.Marshal([]string{value})
		return db.Where(column+" @> ?::jsonb", string(needle))
	}
	return db.Where("EXISTS (SELECT 1 FROM json_each("+column+") WHERE json_each.value = ?)", value)
}
