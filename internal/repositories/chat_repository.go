package repositories

import (
	"errors"
	"time"

	"marketplace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrChatNotFound = errors.New("chat not found")
)

type ChatRepository interface {
	Create(db *gorm.DB, chat *models.Chat) error
	FindByID(db *gorm.DB, id string) (*models.Chat, error)
	FindBetween(db *gorm.DB, userA, userB string) (*models.Chat, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Chat, error)

	CreateMessage(db *gorm.DB, message *models.ChatMessage) error
	FindMessages(db *gorm.DB, chatID string) ([]models.ChatMessage, error)
	TouchLastMessage(db *gorm.DB, chatID string, at time.Time) error
}

type ChatRepositoryImpl struct{}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

// Create inserts the chat and its participant rows.
func (r *ChatRepositoryImpl) Create(db *gorm.DB, chat *models.Chat) error {
	participants := chat.Participants
	chat.Participants = nil

	if err := db.Omit("Messages").Create(chat).Error; err != nil {
		return err
	}

	for i := range participants {
		participants[i].ChatID = chat.ID
		if err := db.Omit("User").Create(&participants[i]).Error; err != nil {
			return err
		}
	}
	chat.Participants = participants
	return nil
}

func (r *ChatRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Chat, error) {
	var chat models.Chat
	if err := db.Preload("Participants.User").First(&chat, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrChatNotFound)
	}
	return &chat, nil
}

// FindBetween returns the one-to-one chat shared by both users.
func (r *ChatRepositoryImpl) FindBetween(db *gorm.DB, userA, userB string) (*models.Chat, error) {
	shared := db.Model(&models.ChatParticipant{}).
		Select("chat_id").
		Where("user_id IN ?", []string{userA, userB}).
		Group("chat_id").
		Having("COUNT(DISTINCT user_id) = ?", 2)

	var chat models.Chat
	err := db.Preload("Participants.User").
		Where("id IN (?)", shared).
		Order("last_message_at DESC").
		First(&chat).Error
	if err != nil {
		return nil, notFound(err, ErrChatNotFound)
	}
	return &chat, nil
}

// FindByUser lists the user's chats, most recently active first.
func (r *ChatRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Chat, error) {
	mine := db.Model(&models.ChatParticipant{}).Select("chat_id").Where("user_id = ?", userID)

	var chats []models.Chat
	err := db.Preload("Participants.User").
		Where("id IN (?)", mine).
		Order("last_message_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *ChatRepositoryImpl) CreateMessage(db *gorm.DB, message *models.ChatMessage) error {
	return db.Omit("Sender").Create(message).Error
}

// FindMessages returns the chat history oldest first, with senders.
func (r *ChatRepositoryImpl) FindMessages(db *gorm.DB, chatID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Preload("Sender").
		Where("chat_id = ?", chatID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *ChatRepositoryImpl) TouchLastMessage(db *gorm.DB, chatID string, at time.Time) error {
	result := db.Model(&models.Chat{}).Where("id = ?", chatID).Update("last_message_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}
