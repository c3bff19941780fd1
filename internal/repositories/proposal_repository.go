package repositories

import (
	"errors"

	"marketplace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrProposalAlreadyExists = errors.New("proposal already exists for campaign and influencer")
	ErrProposalStatusChanged = errors.New("proposal status changed concurrently")
)

type ProposalRepository interface {
	Create(db *gorm.DB, proposal *models.Proposal) error
	FindByID(db *gorm.DB, id string) (*models.Proposal, error)
	FindByCampaign(db *gorm.DB, campaignID string) ([]models.Proposal, error)
	FindByInfluencer(db *gorm.DB, influencerID string) ([]models.Proposal, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	// Transition updates fields only while the proposal is still in status from.
	Transition(db *gorm.DB, id string, from models.ProposalStatus, fields map[string]interface{}) error

	// History and attachments are append-only child rows.
	AppendNegotiation(db *gorm.DB, entry *models.ProposalNegotiation) error
	AddAttachment(db *gorm.DB, attachment *models.ProposalAttachment) error
}

type ProposalRepositoryImpl struct{}

func NewProposalRepository() ProposalRepository {
	return &ProposalRepositoryImpl{}
}

func (r *ProposalRepositoryImpl) Create(db *gorm.DB, proposal *models.Proposal) error {
	err := db.Omit("Campaign", "Influencer", "BrandUser", "NegotiationHistory", "Attachments").
		Create(proposal).Error
	if err != nil {
		if isDuplicate(err) {
			return ErrProposalAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID loads both parties, the campaign, history oldest first and attachments.
func (r *ProposalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := db.Preload("Campaign").
		Preload("Influencer").
		Preload("BrandUser").
		Preload("NegotiationHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).Order("created_at ASC")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ErrProposalNotFound)
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByCampaign(db *gorm.DB, campaignID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := db.Preload("Influencer").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) FindByInfluencer(db *gorm.DB, influencerID string) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := db.Preload("Campaign").
		Preload("Campaign.Brand").
		Preload("BrandUser").
		Where("influencer_id = ?", influencerID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Proposal{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) Transition(db *gorm.DB, id string, from models.ProposalStatus, fields map[string]interface{}) error {
	result := db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalStatusChanged
	}
	return nil
}

func (r *ProposalRepositoryImpl) AppendNegotiation(db *gorm.DB, entry *models.ProposalNegotiation) error {
	return db.Create(entry).Error
}

func (r *ProposalRepositoryImpl) AddAttachment(db *gorm.DB, attachment *models.ProposalAttachment) error {
	return db.Create(attachment).Error
}
