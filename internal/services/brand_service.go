package services

import (
	"errors"
	"io"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/imageprocessor"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/internal/storage"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BrandService interface {
	Onboard(db *gorm.DB, userID string, role models.UserRole, req *dto.BrandOnboardRequest) (*models.Brand, error)
	GetProfile(db *gorm.DB, userID string) (*models.Brand, error)
	UpdateProfile(db *gorm.DB, actorID string, actorRole models.UserRole, userID string, req *dto.UpdateBrandRequest) (*models.Brand, error)
	UploadLogo(db *gorm.DB, userID string, file io.Reader, size int64) (*models.Brand, error)
}

type BrandServiceImpl struct {
	brandRepo repositories.BrandRepository
	userRepo  repositories.UserRepository
	storage   storage.Storage
	processor *imageprocessor.Processor
	limits    UploadLimits
}

func NewBrandService(
	brandRepo repositories.BrandRepository,
	userRepo repositories.UserRepository,
	storage storage.Storage,
	processor *imageprocessor.Processor,
	limits UploadLimits,
) BrandService {
	return &BrandServiceImpl{
		brandRepo: brandRepo,
		userRepo:  userRepo,
		storage:   storage,
		processor: processor,
		limits:    limits,
	}
}

// Onboard creates the brand profile and marks the user's profile as completed
// in one transaction.
func (s *BrandServiceImpl) Onboard(db *gorm.DB, userID string, role models.UserRole, req *dto.BrandOnboardRequest) (*models.Brand, error) {
	if role != models.UserRoleBrand {
		return nil, apperrors.ErrInvalidUserRole
	}

	brand := &models.Brand{
		UserID:      userID,
		CompanyName: req.CompanyName,
		Website:     req.Website,
		Description: req.Description,
		Industry:    req.Industry,
		Logo:        req.Logo,
		Status:      models.ProfileStatusPending,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.brandRepo.Create(tx, brand); err != nil {
		if errors.Is(err, repositories.ErrBrandAlreadyExists) {
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
	return brand, nil
}

func (s *BrandServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.Brand, error) {
	brand, err := s.brandRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return brand, nil
}

func (s *BrandServiceImpl) UpdateProfile(db *gorm.DB, actorID string, actorRole models.UserRole, userID string, req *dto.UpdateBrandRequest) (*models.Brand, error) {
	brand, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if !auth.IsOwnerOrAdmin(actorID, actorRole, brand.UserID) {
		return nil, apperrors.ErrNotAuthorized
	}

	if req.CompanyName != nil {
		brand.CompanyName = *req.CompanyName
	}
	if req.Website != nil {
		brand.Website = *req.Website
	}
	if req.Description != nil {
		brand.Description = *req.Description
	}
	if req.Industry != nil {
		brand.Industry = *req.Industry
	}
	if req.Logo != nil {
		brand.Logo = *req.Logo
	}

	if err := s.brandRepo.Update(db, brand); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return brand, nil
}

// UploadLogo resizes the image, stores it and points the brand's logo at it.
// The previous logo file is removed on a best-effort basis.
func (s *BrandServiceImpl) UploadLogo(db *gorm.DB, userID string, file io.Reader, size int64) (*models.Brand, error) {
	ctx := contextOf(db)

	if s.limits.tooLarge(size) {
		return nil, apperrors.ErrFileTooLarge
	}

	brand, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}

	img, err := s.processor.Process(file, imageprocessor.SizeLogo)
	if err != nil {
		if errors.Is(err, imageprocessor.ErrUnsupportedImage) {
			return nil, apperrors.ErrInvalidFileType
		}
		return nil, apperrors.InternalError(err)
	}

	key := storage.NewKey("logos/"+brand.ID, "logo"+img.Extension)
	if err := s.storage.Save(ctx, key, img.Data, img.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	brand.Logo = url
	if err := s.brandRepo.Update(db, brand); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned logo", delErr, "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Brand logo uploaded", "brand_id", brand.ID, "key", key, "width", img.Width, "height", img.Height)
	return brand, nil
}
