package dto

import "time"

type CreateChatRequest struct {
	RecipientID string `json:"recipientId" validate:"required,max=36"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

// RealtimeMessage is the message body pushed to websocket clients.
type RealtimeMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ReceiveMessageEvent struct {
	ChatID  string          `json:"chatId"`
	Message RealtimeMessage `json:"message"`
}
