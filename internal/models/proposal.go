package models

import (
	"time"

	"gorm.io/datatypes"
)

type Proposal struct {
	BaseModel
	CampaignID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_campaign_influencer" json:"campaignId"`
	Campaign     *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	InfluencerID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_proposal_campaign_influencer;index" json:"influencerId"`
	Influencer   *User     `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"`
	// BrandID is the user id of the brand owner, not the Brand profile id.
	BrandID   string `gorm:"type:varchar(36);not null;index" json:"brandId"`
	BrandUser *User  `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	Message      string                      `gorm:"type:text;not null" json:"message"`
	ProposedRate float64                     `gorm:"not null" json:"proposedRate"`
	Deliverables datatypes.JSONSlice[string] `json:"deliverables"`
	Timeline     string                      `gorm:"not null" json:"timeline"`
	Status       ProposalStatus              `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	NegotiationHistory []ProposalNegotiation `gorm:"foreignKey:ProposalID" json:"negotiationHistory"`

	FinalRate         *float64                    `json:"finalRate,omitempty"`
	FinalDeliverables datatypes.JSONSlice[string] `json:"finalDeliverables,omitempty"`
	FinalTimeline     string                      `json:"finalTimeline,omitempty"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"paymentStatus"`
	PaymentAmount *float64      `json:"paymentAmount,omitempty"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`

	Attachments []ProposalAttachment `gorm:"foreignKey:ProposalID" json:"attachments"`

	BrandRating      *int   `gorm:"check:brand_rating BETWEEN 1 AND 5" json:"brandRating,omitempty"`
	InfluencerRating *int   `gorm:"check:influencer_rating BETWEEN 1 AND 5" json:"influencerRating,omitempty"`
	Review           string `gorm:"type:text" json:"review,omitempty"`
}

// IsParty reports whether userID is the influencer or the brand on p.
func (p *Proposal) IsParty(userID string) bool {
	return userID == p.InfluencerID || userID == p.BrandID
}

// ProposalNegotiation is one append-only entry of a proposal's history.
type ProposalNegotiation struct {
	BaseModel
	ProposalID   string           `gorm:"type:varchar(36);not null;index" json:"-"`
	From         NegotiationParty `gorm:"type:varchar(20);not null" json:"from"`
	Message      string           `gorm:"type:text" json:"message"`
	ProposedRate *float64         `json:"proposedRate,omitempty"`
	Timestamp    time.Time        `gorm:"not null" json:"timestamp"`
}

type ProposalAttachment struct {
	BaseModel
	ProposalID  string    `gorm:"type:varchar(36);not null;index" json:"-"`
	Filename    string    `gorm:"not null" json:"filename"`
	URL         string    `gorm:"not null" json:"url"`
	StorageKey  string    `gorm:"not null" json:"-"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  string    `gorm:"type:varchar(36)" json:"uploadedBy"`
	UploadedAt  time.Time `gorm:"not null" json:"uploadedAt"`
}
