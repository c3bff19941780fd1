package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type SocialPlatform struct {
	Platform  string `json:"platform" validate:"required,max=50"`
	Username  string `json:"username" validate:"required,max=100"`
	Followers int    `json:"followers" validate:"gte=0"`
}

type PostStat struct {
	Likes    int       `json:"likes"`
	Comments int       `json:"comments"`
	Date     time.Time `json:"date"`
}

type FollowersPoint struct {
	Count int       `json:"count"`
	Date  time.Time `json:"date"`
}

type EngagementPoint struct {
	Rate float64   `json:"rate"`
	Date time.Time `json:"date"`
}

// InstagramStats is produced by a StatsProvider. A nil LastUpdated means the
// influencer was never refreshed.
type InstagramStats struct {
	Followers         int               `json:"followers"`
	EngagementRate    float64           `json:"engagementRate"`
	Posts             []PostStat        `json:"posts"`
	FollowersHistory  []FollowersPoint  `json:"followersHistory"`
	EngagementHistory []EngagementPoint `json:"engagementHistory"`
	LastUpdated       *time.Time        `json:"lastUpdated,omitempty"`
}

type Influencer struct {
	BaseModel
	UserID          string                              `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	User            *User                               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bio             string                              `gorm:"type:text" json:"bio"`
	Categories      datatypes.JSONSlice[string]         `json:"categories"`
	SocialPlatforms datatypes.JSONSlice[SocialPlatform] `json:"socialPlatforms"`
	InstagramStats  datatypes.JSONType[InstagramStats]  `json:"instagramStats"`
	Status          ProfileStatus                       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// Platform returns the linked account for name, case-insensitively.
func (i *Influencer) Platform(name string) (SocialPlatform, bool) {
	for _, p := range i.SocialPlatforms {
		if strings.EqualFold(p.Platform, name) {
			return p, true
		}
	}
	return SocialPlatform{}, false
}
