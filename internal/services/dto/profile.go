package dto

import (
	"marketplace_backend/internal/models"
)

type BrandOnboardRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Website     string `json:"website" validate:"required,url"`
	Description string `json:"description" validate:"required,max=5000"`
	Industry    string `json:"industry" validate:"omitempty,max=100"`
	Logo        string `json:"logo" validate:"omitempty,url"`
}

type UpdateBrandRequest struct {
	CompanyName *string `json:"companyName" validate:"omitempty,min=1,max=200"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
	Industry    *string `json:"industry" validate:"omitempty,max=100"`
	Logo        *string `json:"logo" validate:"omitempty,url"`
}

type InfluencerOnboardRequest struct {
	Bio             string                  `json:"bio" validate:"max=1000"`
	Categories      []string                `json:"categories" validate:"max=20,dive,required,max=50"`
	SocialPlatforms []models.SocialPlatform `json:"socialPlatforms" validate:"max=20,dive"`
}

// UpdateInfluencerRequest replaces a list only when it is present in the body.
type UpdateInfluencerRequest struct {
	Bio             *string                  `json:"bio" validate:"omitempty,max=1000"`
	Categories      *[]string                `json:"categories" validate:"omitempty,max=20,dive,required,max=50"`
	SocialPlatforms *[]models.SocialPlatform `json:"socialPlatforms" validate:"omitempty,max=20,dive"`
}

type RefreshStatsResponse struct {
	Message string                `json:"message"`
	Stats   models.InstagramStats `json:"stats"`
}
