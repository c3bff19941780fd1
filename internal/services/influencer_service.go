package services

import (
	"errors"
	"net/http"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const platformInstagram = "instagram"

type InfluencerService interface {
	Onboard(db *gorm.DB, userID string, role models.UserRole, req *dto.InfluencerOnboardRequest) (*models.Influencer, error)
	GetProfile(db *gorm.DB, userID string) (*models.Influencer, error)
	UpdateProfile(db *gorm.DB, actorID string, actorRole models.UserRole, userID string, req *dto.UpdateInfluencerRequest) (*models.Influencer, error)
	// GetInstagramStats returns nil when the influencer was never refreshed.
	GetInstagramStats(db *gorm.DB, userID string) (*models.InstagramStats, error)
	RefreshInstagramStats(db *gorm.DB, actorID string, actorRole models.UserRole, userID string) (*models.InstagramStats, error)
}

type InfluencerServiceImpl struct {
	influencerRepo repositories.InfluencerRepository
	userRepo       repositories.UserRepository
	stats          StatsProvider
}

func NewInfluencerService(
	influencerRepo repositories.InfluencerRepository,
	userRepo repositories.UserRepository,
	stats StatsProvider,
) InfluencerService {
	return &InfluencerServiceImpl{
		influencerRepo: influencerRepo,
		userRepo:       userRepo,
		stats:          stats,
	}
}

func (s *InfluencerServiceImpl) Onboard(db *gorm.DB, userID string, role models.UserRole, req *dto.InfluencerOnboardRequest) (*models.Influencer, error) {
	if role != models.UserRoleInfluencer {
		return nil, apperrors.ErrInvalidUserRole
	}

	influencer := &models.Influencer{
		UserID:          userID,
		Bio:             req.Bio,
		Categories:      nonNilStrings(req.Categories),
		SocialPlatforms: nonNilPlatforms(req.SocialPlatforms),
		Status:          models.ProfileStatusPending,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.influencerRepo.Create(tx, influencer); err != nil {
		if errors.Is(err, repositories.ErrInfluencerAlreadyExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateFields(tx, userID, map[string]interface{}{"profile_completed": true}); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return influencer, nil
}

func (s *InfluencerServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.Influencer, error) {
	influencer, err := s.influencerRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInfluencerNotFound) {
			return nil, apperrors.ErrInfluencerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return influencer, nil
}

func (s *InfluencerServiceImpl) UpdateProfile(db *gorm.DB, actorID string, actorRole models.UserRole, userID string, req *dto.UpdateInfluencerRequest) (*models.Influencer, error) {
	influencer, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if !auth.IsOwnerOrAdmin(actorID, actorRole, influencer.UserID) {
		return nil, apperrors.ErrNotAuthorized
	}

	if req.Bio != nil {
		influencer.Bio = *req.Bio
	}
	if req.Categories != nil {
		influencer.Categories = nonNilStrings(*req.Categories)
	}
	if req.SocialPlatforms != nil {
		influencer.SocialPlatforms = nonNilPlatforms(*req.SocialPlatforms)
	}

	if err := s.influencerRepo.Update(db, influencer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return influencer, nil
}

func (s *InfluencerServiceImpl) GetInstagramStats(db *gorm.DB, userID string) (*models.InstagramStats, error) {
	influencer, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	stats := influencer.InstagramStats.Data()
	if stats.LastUpdated == nil {
		return nil, nil
	}
	return &stats, nil
}

func (s *InfluencerServiceImpl) RefreshInstagramStats(db *gorm.DB, actorID string, actorRole models.UserRole, userID string) (*models.InstagramStats, error) {
	ctx := contextOf(db)

	influencer, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if !auth.IsOwnerOrAdmin(actorID, actorRole, influencer.UserID) {
		return nil, apperrors.ErrNotAuthorized
	}

	account, ok := influencer.Platform(platformInstagram)
	if !ok {
		return nil, apperrors.ErrNoInstagramAccount
	}

	stats, err := s.stats.FetchInstagramStats(ctx, account.Username)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "influencer",
			"Failed to fetch Instagram stats", http.StatusBadGateway)
	}

	if err := s.influencerRepo.UpdateInstagramStats(db, influencer.ID, *stats); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Instagram stats refreshed", "influencer_id", influencer.ID, "followers", stats.Followers)
	return stats, nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilPlatforms(values []models.SocialPlatform) []models.SocialPlatform {
	if values == nil {
		return []models.SocialPlatform{}
	}
	return values
}
