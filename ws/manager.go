package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/services/dto"
)

// WebSocketManager tracks connections and chat rooms on this instance and
// delivers broker envelopes to room members.
type WebSocketManager struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	broker  Broker
	metrics *metrics.Metrics
}

func NewWebSocketManager(broker Broker, m *metrics.Metrics) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		broker:     broker,
		metrics:    m,
	}
}

// Run subscribes to the broker and serves registrations until ctx ends, then
// closes every connection.
func (manager *WebSocketManager) Run(ctx context.Context) error {
	if err := manager.broker.Subscribe(ctx, manager.deliver); err != nil {
		close(manager.done)
		return err
	}

	go func() {
		defer close(manager.done)
		for {
			select {
			case client := <-manager.register:
				manager.mu.Lock()
				manager.clients[client] = true
				total := len(manager.clients)
				manager.mu.Unlock()
				manager.gaugeAdd(1)
				logger.Debug("WebSocket client registered", "conn_id", client.ID, "user_id", client.UserID, "total", total)

			case client := <-manager.unregister:
				manager.remove(client)

			case <-ctx.Done():
				manager.mu.Lock()
				for client := range manager.clients {
					close(client.send)
					manager.gaugeAdd(-1)
				}
				manager.clients = make(map[*Client]bool)
				manager.rooms = make(map[string]map[*Client]bool)
				manager.mu.Unlock()
				return
			}
		}
	}()
	return nil
}

func (manager *WebSocketManager) Register(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !manager.clients[client] {
		return
	}
	for chatID := range client.rooms {
		if room := manager.rooms[chatID]; room != nil {
			delete(room, client)
			if len(room) == 0 {
				delete(manager.rooms, chatID)
			}
		}
	}
	delete(manager.clients, client)
	close(client.send)
	manager.gaugeAdd(-1)
	logger.Debug("WebSocket client unregistered", "conn_id", client.ID, "total", len(manager.clients))
}

// Join adds client to the chat room. Membership must already be verified.
func (manager *WebSocketManager) Join(chatID string, client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if !manager.clients[client] {
		return
	}
	room := manager.rooms[chatID]
	if room == nil {
		room = make(map[*Client]bool)
		manager.rooms[chatID] = room
	}
	room[client] = true
	client.rooms[chatID] = true
}

// Publish implements services.MessagePublisher.
func (manager *WebSocketManager) Publish(ctx context.Context, chatID string, event dto.ReceiveMessageEvent, origin string) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", EventReceiveMessage, err)
	}
	return manager.broker.Publish(ctx, Envelope{
		ChatID: chatID,
		Origin: origin,
		Event:  EventReceiveMessage,
		Data:   data,
	})
}

// deliver sends env to every room member except the origin connection.
// Members whose buffers are full are disconnected.
func (manager *WebSocketManager) deliver(env Envelope) {
	frame, err := json.Marshal(OutgoingWSMessage{Event: env.Event, Data: env.Data})
	if err != nil {
		logger.Error("Failed to encode websocket frame", "error", err, "chat_id", env.ChatID)
		return
	}

	var slow []*Client
	manager.mu.RLock()
	for client := range manager.rooms[env.ChatID] {
		if client.ID == env.Origin {
			continue
		}
		select {
		case client.send <- frame:
		default:
			slow = append(slow, client)
		}
	}
	manager.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("Dropping slow websocket client", "conn_id", client.ID, "user_id", client.UserID)
		go manager.Unregister(client)
	}
}

// GetClientCount returns the number of connections on this instance.
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

func (manager *WebSocketManager) gaugeAdd(delta float64) {
	if manager.metrics != nil {
		manager.metrics.WSConnections.Add(delta)
	}
}
