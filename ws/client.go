package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/services"
	"marketplace_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const (
	EventJoinChat       = "join-chat"
	EventSendMessage    = "send-message"
	EventReceiveMessage = "receive-message"
	EventError          = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 256
	operationWait  = 10 * time.Second
)

type IncomingWSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OutgoingWSMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type sendMessagePayload struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

// Client is one websocket connection. ID is per connection; a user may hold
// several.
type Client struct {
	ID     string
	UserID string
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[string]bool // guarded by manager.mu

	manager     *WebSocketManager
	chatService services.ChatService
	db          *gorm.DB
	requestID   string
}

func newClient(conn *websocket.Conn, userID, requestID string, manager *WebSocketManager, chatService services.ChatService, db *gorm.DB) *Client {
	return &Client{
		ID:          uuid.NewString(),
		UserID:      userID,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		rooms:       make(map[string]bool),
		manager:     manager,
		chatService: chatService,
		db:          db,
		requestID:   requestID,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msgBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "conn_id", c.ID, "error", err)
			}
			return
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			c.sendError("Invalid message format")
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Debug("WebSocket write error", "conn_id", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg IncomingWSMessage) {
	ctx, cancel := c.operationContext()
	defer cancel()
	db := c.db.WithContext(ctx)

	switch msg.Event {
	case EventJoinChat:
		var chatID string
		if err := json.Unmarshal(msg.Data, &chatID); err != nil || chatID == "" {
			c.sendError("join-chat expects a chat id")
			return
		}
		if err := c.chatService.CheckParticipant(db, c.UserID, chatID); err != nil {
			c.sendServiceError(ctx, err)
			return
		}
		c.manager.Join(chatID, c)
		logger.CtxDebug(ctx, "Joined chat room", "chat_id", chatID, "conn_id", c.ID)

	case EventSendMessage:
		var payload sendMessagePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ChatID == "" || payload.Content == "" {
			c.sendError("send-message expects chatId and content")
			return
		}
		if _, err := c.chatService.SendMessage(db, c.UserID, payload.ChatID, payload.Content, c.ID); err != nil {
			c.sendServiceError(ctx, err)
		}

	default:
		c.sendError("Unknown event: " + msg.Event)
	}
}

// operationContext carries the ids of the upgrade request so that queries made
// on behalf of this connection are logged like HTTP ones.
func (c *Client) operationContext() (context.Context, context.CancelFunc) {
	ctx := logger.WithRequestID(context.Background(), c.requestID)
	ctx = logger.WithUserID(ctx, c.UserID)
	return context.WithTimeout(ctx, operationWait)
}

func (c *Client) sendServiceError(ctx context.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode < 500 {
		c.sendError(appErr.Message)
		return
	}
	logger.CtxWithError(ctx, "WebSocket operation failed", err, "conn_id", c.ID)
	c.sendError("Internal server error")
}

func (c *Client) sendError(message string) {
	frame, err := json.Marshal(OutgoingWSMessage{Event: EventError, Data: map[string]string{"message": message}})
	if err != nil {
		return
	}

	c.manager.mu.RLock()
	defer c.manager.mu.RUnlock()
	if !c.manager.clients[c] {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}
