package dto

import (
	"marketplace_backend/internal/models"
)

type CreateCampaignRequest struct {
	Title        string        `json:"title" validate:"required,max=200"`
	Description  string        `json:"description" validate:"required,max=10000"`
	Budget       float64       `json:"budget" validate:"required,gt=0"`
	Requirements string        `json:"requirements" validate:"max=5000"`
	Categories   []string      `json:"categories" validate:"max=20,dive,required,max=50"`
	Platforms    []string      `json:"platforms" validate:"max=20,dive,required,max=50"`
	Deadline     *FlexibleTime `json:"deadline" validate:"required"`
}

// UpdateCampaignRequest is a partial update; nil fields are left unchanged.
type UpdateCampaignRequest struct {
	Title        *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string                `json:"description" validate:"omitempty,min=1,max=10000"`
	Budget       *float64               `json:"budget" validate:"omitempty,gt=0"`
	Requirements *string                `json:"requirements" validate:"omitempty,max=5000"`
	Categories   *[]string              `json:"categories" validate:"omitempty,max=20,dive,required,max=50"`
	Platforms    *[]string              `json:"platforms" validate:"omitempty,max=20,dive,required,max=50"`
	Deadline     *FlexibleTime          `json:"deadline"`
	Status       *models.CampaignStatus `json:"status" validate:"omitempty,is-campaign-status"`
}

type CampaignListQuery struct {
	Category string `form:"category" validate:"max=50"`
	Platform string `form:"platform" validate:"max=50"`
}

type CampaignListResponse struct {
	Campaigns []models.Campaign `json:"campaigns"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Pages     int               `json:"pages"`
}

type ApplyRequest struct {
	Message string `json:"message" validate:"max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}
