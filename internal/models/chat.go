package models

import "time"

type Chat struct {
	BaseModel
	LastMessageAt time.Time         `gorm:"not null;index" json:"lastMessage"`
	Participants  []ChatParticipant `gorm:"foreignKey:ChatID" json:"participants"`
	Messages      []ChatMessage     `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
}

// HasParticipant reports whether userID belongs to the loaded participant list.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type ChatParticipant struct {
	BaseModel
	ChatID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_chat_participant" json:"-"`
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_chat_participant;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type ChatMessage struct {
	BaseModel
	ChatID    string    `gorm:"type:varchar(36);not null;index" json:"chatId"`
	SenderID  string    `gorm:"type:varchar(36);not null" json:"senderId"`
	Sender    *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}
