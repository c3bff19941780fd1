package services

import (
	"errors"
	"math"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type CampaignService interface {
	List(db *gorm.DB, query *dto.CampaignListQuery, page, pageSize int) (*dto.CampaignListResponse, error)
	Get(db *gorm.DB, id string) (*models.Campaign, error)
	Create(db *gorm.DB, userID string, req *dto.CreateCampaignRequest) (*models.Campaign, error)
	Update(db *gorm.DB, userID, id string, req *dto.UpdateCampaignRequest) (*models.Campaign, error)

	// Apply records a lightweight application from an influencer.
	Apply(db *gorm.DB, userID string, role models.UserRole, campaignID, message string) error
	UpdateApplicationStatus(db *gorm.DB, userID, campaignID, applicationID string, status models.ApplicationStatus) error
}

type CampaignServiceImpl struct {
	campaignRepo repositories.CampaignRepository
	brandRepo    repositories.BrandRepository
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	brandRepo repositories.BrandRepository,
	m *metrics.Metrics,
) CampaignService {
	return &CampaignServiceImpl{
		campaignRepo: campaignRepo,
		brandRepo:    brandRepo,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *CampaignServiceImpl) List(db *gorm.DB, query *dto.CampaignListQuery, page, pageSize int) (*dto.CampaignListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	filter := repositories.CampaignFilter{
		Category: query.Category,
		Platform: query.Platform,
		Page:     page,
		PageSize: pageSize,
	}

	campaigns, total, err := s.campaignRepo.FindActive(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}

	return &dto.CampaignListResponse{
		Campaigns: campaigns,
		Total:     total,
		Page:      page,
		Pages:     int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *CampaignServiceImpl) Get(db *gorm.DB, id string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return campaign, nil
}

func (s *CampaignServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateCampaignRequest) (*models.Campaign, error) {
	brand, err := s.brandRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrOnlyBrandsCreate
		}
		return nil, apperrors.InternalError(err)
	}

	if !req.Deadline.After(s.now()) {
		return nil, apperrors.ErrDeadlineInPast
	}

	campaign := &models.Campaign{
		BrandID:      brand.ID,
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Requirements: req.Requirements,
		Categories:   nonNilStrings(req.Categories),
		Platforms:    nonNilStrings(req.Platforms),
		Deadline:     req.Deadline.Time,
		Status:       models.CampaignStatusActive,
	}

	if err := s.campaignRepo.Create(db, campaign); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(contextOf(db), "Campaign created", "campaign_id", campaign.ID, "brand_id", brand.ID)
	return campaign, nil
}

func (s *CampaignServiceImpl) Update(db *gorm.DB, userID, id string, req *dto.UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}

	if !ownsCampaign(campaign, userID) {
		return nil, apperrors.ErrNotAuthorized
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Budget != nil {
		fields["budget"] = *req.Budget
	}
	if req.Requirements != nil {
		fields["requirements"] = *req.Requirements
	}
	if req.Categories != nil {
		fields["categories"] = datatypes.NewJSONSlice(nonNilStrings(*req.Categories))
	}
	if req.Platforms != nil {
		fields["platforms"] = datatypes.NewJSONSlice(nonNilStrings(*req.Platforms))
	}
	if req.Deadline != nil {
		if !req.Deadline.After(s.now()) {
			return nil, apperrors.ErrDeadlineInPast
		}
		fields["deadline"] = req.Deadline.Time
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.campaignRepo.UpdateFields(db, id, fields); err != nil {
			if errors.Is(err, repositories.ErrCampaignNotFound) {
				return nil, apperrors.ErrCampaignNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.Get(db, id)
}

// Apply relies on the (campaign_id, influencer_id) unique index, so concurrent
// applies by the same influencer cannot both succeed.
func (s *CampaignServiceImpl) Apply(db *gorm.DB, userID string, role models.UserRole, campaignID, message string) error {
	campaign, err := s.Get(db, campaignID)
	if err != nil {
		return err
	}

	if role != models.UserRoleInfluencer {
		return apperrors.ErrOnlyInfluencersApply
	}

	if !campaign.IsOpen() {
		return apperrors.ErrCampaignNotOpen
	}

	application := &models.CampaignApplication{
		CampaignID:   campaign.ID,
		InfluencerID: userID,
		Message:      message,
		Status:       models.ApplicationStatusPending,
		SubmittedAt:  s.now(),
	}

	if err := s.campaignRepo.CreateApplication(db, application); err != nil {
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return apperrors.ErrAlreadyApplied
		}
		return apperrors.InternalError(err)
	}

	if s.metrics != nil {
		s.metrics.ApplicationsCreated.Inc()
	}
	logger.CtxInfo(contextOf(db), "Campaign application submitted", "campaign_id", campaign.ID, "application_id", application.ID)
	return nil
}

func (s *CampaignServiceImpl) UpdateApplicationStatus(db *gorm.DB, userID, campaignID, applicationID string, status models.ApplicationStatus) error {
	campaign, err := s.Get(db, campaignID)
	if err != nil {
		return err
	}

	if !ownsCampaign(campaign, userID) {
		return apperrors.ErrNotAuthorized
	}

	application, err := s.campaignRepo.FindApplication(db, campaignID, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}

	if !application.Status.CanTransitionTo(status) {
		return apperrors.ErrInvalidStatus("campaign",
			"Cannot change proposal status from "+string(application.Status)+" to "+string(status))
	}
	if application.Status == status {
		return nil
	}

	if err := s.campaignRepo.UpdateApplicationStatus(db, application.ID, status); err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func ownsCampaign(campaign *models.Campaign, userID string) bool {
	return campaign.Brand != nil && campaign.Brand.UserID == userID
}
