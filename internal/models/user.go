package models

import (
	"time"

	"gorm.io/datatypes"
)

type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type User struct {
	BaseModel
	Email            string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string   `gorm:"not null" json:"-"`
	Role             UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Name             string   `gorm:"not null" json:"name"`
	ProfileCompleted bool     `gorm:"not null;default:false" json:"profileCompleted"`
	EmailVerified    bool     `gorm:"not null;default:false" json:"emailVerified"`

	// Tokens are stored as SHA-256 digests and cleared after use.
	EmailVerificationToken   string     `gorm:"index" json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `gorm:"index" json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`

	Avatar      string                          `json:"avatar,omitempty"`
	Bio         string                          `gorm:"type:text" json:"bio,omitempty"`
	Website     string                          `json:"website,omitempty"`
	Location    string                          `json:"location,omitempty"`
	Phone       string                          `json:"phone,omitempty"`
	SocialMedia datatypes.JSONType[SocialMedia] `json:"socialMedia"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
