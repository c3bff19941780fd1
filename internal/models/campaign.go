package models

import (
	"time"

	"gorm.io/datatypes"
)

type Campaign struct {
	BaseModel
	BrandID      string                      `gorm:"type:varchar(36);not null;index" json:"brandId"`
	Brand        *Brand                      `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Budget       float64                     `gorm:"not null" json:"budget"`
	Requirements string                      `gorm:"type:text" json:"requirements"`
	Categories   datatypes.JSONSlice[string] `json:"categories"`
	Platforms    datatypes.JSONSlice[string] `json:"platforms"`
	Deadline     time.Time                   `gorm:"not null;index" json:"deadline"`
	Status       CampaignStatus              `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// Proposals are the lightweight applications submitted through apply.
	Proposals []CampaignApplication `gorm:"foreignKey:CampaignID" json:"proposals"`
}

func (c *Campaign) IsOpen() bool {
	return c.Status == CampaignStatusActive
}

// CampaignApplication is one influencer's apply record on a campaign.
type CampaignApplication struct {
	BaseModel
	CampaignID   string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_campaign_influencer" json:"campaignId"`
	InfluencerID string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_campaign_influencer;index" json:"influencerId"`
	Influencer   *User             `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"`
	Message      string            `gorm:"type:text" json:"message"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmittedAt  time.Time         `gorm:"not null" json:"submittedAt"`
}
