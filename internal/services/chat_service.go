package services

import (
	"context"
	"errors"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessagePublisher pushes a stored chat message to connected clients. origin
// identifies the websocket connection that sent it, empty for REST.
type MessagePublisher interface {
	Publish(ctx context.Context, chatID string, event dto.ReceiveMessageEvent, origin string) error
}

type ChatService interface {
	ListChats(db *gorm.DB, userID string) ([]models.Chat, error)
	GetMessages(db *gorm.DB, userID, chatID string) ([]models.ChatMessage, error)
	// SendMessage is the single write path for REST and websocket messages.
	SendMessage(db *gorm.DB, userID, chatID, content, origin string) (*models.ChatMessage, error)
	// CreateChat returns the existing chat between the pair when there is one;
	// created reports whether a new chat was made.
	CreateChat(db *gorm.DB, userID, recipientID string) (chat *models.Chat, created bool, err error)
	CheckParticipant(db *gorm.DB, userID, chatID string) error
}

type ChatServiceImpl struct {
	chatRepo  repositories.ChatRepository
	userRepo  repositories.UserRepository
	publisher MessagePublisher
	now       func() time.Time
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	publisher MessagePublisher,
) ChatService {
	return &ChatServiceImpl{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ChatServiceImpl) ListChats(db *gorm.DB, userID string) ([]models.Chat, error) {
	chats, err := s.chatRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	return chats, nil
}

func (s *ChatServiceImpl) GetMessages(db *gorm.DB, userID, chatID string) ([]models.ChatMessage, error) {
	if err := s.CheckParticipant(db, userID, chatID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.FindMessages(db, chatID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

func (s *ChatServiceImpl) SendMessage(db *gorm.DB, userID, chatID, content, origin string) (*models.ChatMessage, error) {
	ctx := contextOf(db)

	if err := s.CheckParticipant(db, userID, chatID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChatID:    chatID,
		SenderID:  userID,
		Content:   content,
		Timestamp: s.now(),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.chatRepo.CreateMessage(tx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.chatRepo.TouchLastMessage(tx, chatID, message.Timestamp); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.publisher != nil {
		event := dto.ReceiveMessageEvent{
			ChatID: chatID,
			Message: dto.RealtimeMessage{
				ID:        message.ID,
				SenderID:  message.SenderID,
				Content:   message.Content,
				Timestamp: message.Timestamp,
			},
		}
		if err := s.publisher.Publish(ctx, chatID, event, origin); err != nil {
			logger.CtxWithError(ctx, "Failed to publish chat message", err, "chat_id", chatID, "message_id", message.ID)
		}
	}

	return message, nil
}

func (s *ChatServiceImpl) CreateChat(db *gorm.DB, userID, recipientID string) (*models.Chat, bool, error) {
	if userID == recipientID {
		return nil, false, apperrors.ErrChatWithSelf
	}

	if _, err := s.userRepo.FindByID(db, recipientID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, false, apperrors.ErrRecipientGone
		}
		return nil, false, apperrors.InternalError(err)
	}

	existing, err := s.chatRepo.FindBetween(db, userID, recipientID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrChatNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	chat := &models.Chat{
		LastMessageAt: s.now(),
		Participants: []models.ChatParticipant{
			{UserID: userID},
			{UserID: recipientID},
		},
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, false, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.chatRepo.Create(tx, chat); err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, false, apperrors.InternalError(err)
	}

	created, err := s.chatRepo.FindByID(db, chat.ID)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	return created, true, nil
}

func (s *ChatServiceImpl) CheckParticipant(db *gorm.DB, userID, chatID string) error {
	chat, err := s.chatRepo.FindByID(db, chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return apperrors.ErrChatNotFound
		}
		return apperrors.InternalError(err)
	}

	if !chat.HasParticipant(userID) {
		return apperrors.ErrNotAuthorized
	}
	return nil
}
