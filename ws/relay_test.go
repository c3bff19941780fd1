package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"marketplace_backend/internal/models"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/internal/testutil"
	"marketplace_backend/pkg/apperrors"
	"marketplace_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeChatService treats every user in members as a participant of every chat
// and publishes sent messages straight away.
type fakeChatService struct {
	mu      sync.Mutex
	members map[string]bool
	sent    []string
	pub     *WebSocketManager
}

func (f *fakeChatService) ListChats(db *gorm.DB, userID string) ([]models.Chat, error) {
	return nil, nil
}

func (f *fakeChatService) GetMessages(db *gorm.DB, userID, chatID string) ([]models.ChatMessage, error) {
	return nil, nil
}

func (f *fakeChatService) SendMessage(db *gorm.DB, userID, chatID, content, origin string) (*models.ChatMessage, error) {
	if err := f.CheckParticipant(db, userID, chatID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.sent = append(f.sent, content)
	f.mu.Unlock()

	msg := &models.ChatMessage{ChatID: chatID, SenderID: userID, Content: content, Timestamp: time.Now()}
	event := dto.ReceiveMessageEvent{ChatID: chatID, Message: dto.RealtimeMessage{SenderID: userID, Content: content, Timestamp: msg.Timestamp}}
	return msg, f.pub.Publish(context.Background(), chatID, event, origin)
}

func (f *fakeChatService) CreateChat(db *gorm.DB, userID, recipientID string) (*models.Chat, bool, error) {
	return nil, false, nil
}

func (f *fakeChatService) CheckParticipant(db *gorm.DB, userID, chatID string) error {
	if !f.members[userID] {
		return apperrors.ErrNotAuthorized
	}
	return nil
}

type relayFixture struct {
	server  *httptest.Server
	manager *WebSocketManager
}

func newRelayFixture(t *testing.T, members ...string) *relayFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	manager := NewWebSocketManager(NewLocalBroker(), nil)
	require.NoError(t, manager.Run(ctx))

	chat := &fakeChatService{members: map[string]bool{}, pub: manager}
	for _, m := range members {
		chat.members[m] = true
	}

	handler := NewWebSocketHandler(manager, chat, testutil.NewTestDB(t), []string{"*"})
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set(contextkeys.UserIDKey, c.Query("user"))
	}, handler.ServeWS)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &relayFixture{server: server, manager: manager}
}

func (f *relayFixture) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(IncomingWSMessage{Event: event, Data: raw}))
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func read(t *testing.T, conn *websocket.Conn, wait time.Duration) (frame, error) {
	t.Helper()
	var f frame
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	err := conn.ReadJSON(&f)
	return f, err
}

func TestRelayDeliversToRoomExceptSender(t *testing.T) {
	fx := newRelayFixture(t, "alice", "bob")
	alice := fx.dial(t, "alice")
	bob := fx.dial(t, "bob")

	require.Eventually(t, func() bool { return fx.manager.GetClientCount() == 2 }, time.Second, 10*time.Millisecond)

	send(t, alice, EventJoinChat, "chat-1")
	send(t, bob, EventJoinChat, "chat-1")
	require.Eventually(t, func() bool {
		fx.manager.mu.RLock()
		defer fx.manager.mu.RUnlock()
		return len(fx.manager.rooms["chat-1"]) == 2
	}, time.Second, 10*time.Millisecond)

	send(t, alice, EventSendMessage, map[string]string{"chatId": "chat-1", "content": "hello bob"})

	got, err := read(t, bob, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, EventReceiveMessage, got.Event)

	var event dto.ReceiveMessageEvent
	require.NoError(t, json.Unmarshal(got.Data, &event))
	assert.Equal(t, "chat-1", event.ChatID)
	assert.Equal(t, "hello bob", event.Message.Content)
	assert.Equal(t, "alice", event.Message.SenderID)

	_, err = read(t, alice, 300*time.Millisecond)
	assert.Error(t, err, "the sender must not receive its own message")
}

func TestRelayRejectsNonParticipants(t *testing.T) {
	fx := newRelayFixture(t, "alice")
	eve := fx.dial(t, "eve")

	send(t, eve, EventJoinChat, "chat-1")
	got, err := read(t, eve, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, EventError, got.Event)
	assert.Contains(t, string(got.Data), "Not authorized")

	send(t, eve, "unknown-event", nil)
	got, err = read(t, eve, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, EventError, got.Event)
	assert.Contains(t, string(got.Data), "Unknown event")
}

func TestManagerClosesClientsOnShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewWebSocketManager(NewLocalBroker(), nil)
	require.NoError(t, manager.Run(ctx))

	client := &Client{ID: "c1", send: make(chan []byte, 1), rooms: map[string]bool{}}
	require.True(t, manager.Register(client))

	cancel()
	<-manager.done
	_, open := <-client.send
	assert.False(t, open)
	assert.False(t, manager.Register(&Client{ID: "late", send: make(chan []byte, 1), rooms: map[string]bool{}}))
}
