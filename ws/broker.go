package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketplace_backend/internal/config"
)

// Envelope is what travels between instances. Origin is the id of the
// connection that produced the event so that it is skipped everywhere.
type Envelope struct {
	ChatID string          `json:"chatId"`
	Origin string          `json:"origin,omitempty"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
}

// Broker fans chat events out to every instance, including this one.
type Broker interface {
	Publish(ctx context.Context, env Envelope) error
	// Subscribe delivers every published envelope to handler until ctx ends.
	Subscribe(ctx context.Context, handler func(Envelope)) error
	Close() error
}

func NewBroker(cfg *config.Config) (Broker, error) {
	switch cfg.Relay.Driver {
	case "local", "":
		return NewLocalBroker(), nil
	case "redis":
		return NewRedisBroker(cfg.Relay.RedisAddr, cfg.Relay.RedisPassword, cfg.Relay.RedisDB)
	case "nats":
		return NewNATSBroker(cfg.Relay.NATSURL)
	default:
		return nil, fmt.Errorf("unsupported relay driver: %s", cfg.Relay.Driver)
	}
}

// LocalBroker delivers in-process, for single-instance deployments and tests.
type LocalBroker struct {
	mu       sync.RWMutex
	handlers []func(Envelope)
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{}
}

func (b *LocalBroker) Publish(ctx context.Context, env Envelope) error {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	for _, h := range handlers {
		h(env)
	}
	return nil
}

func (b *LocalBroker) Subscribe(ctx context.Context, handler func(Envelope)) error {
	b.mu.Lock()
	b.handlers = append(b.handlers, handler)
	b.mu.Unlock()
	return nil
}

func (b *LocalBroker) Close() error {
	b.mu.Lock()
	b.handlers = nil
	b.mu.Unlock()
	return nil
}

func decodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
