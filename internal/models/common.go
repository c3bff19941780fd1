package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the primary key and timestamps. IDs are generated
// client-side so the schema does not depend on a uuid extension.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Brand{},
		&Influencer{},
		&Campaign{},
		&CampaignApplication{},
		&Proposal{},
		&ProposalNegotiation{},
		&ProposalAttachment{},
		&Chat{},
		&ChatParticipant{},
		&ChatMessage{},
	}
}
