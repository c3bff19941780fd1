package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace_backend/internal/logger"

	"github.com/nats-io/nats.go"
)

const natsSubjectPrefix = "chat."

// NATSBroker relays envelopes over core NATS subjects chat.<id>.
type NATSBroker struct {
	conn *nats.Conn
}

func NewNATSBroker(url string) (*NATSBroker, error) {
	conn, err := nats.Connect(url, nats.Name("marketplace-relay"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSBroker{conn: conn}, nil
}

func (b *NATSBroker) Publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return b.conn.Publish(natsSubjectPrefix+env.ChatID, payload)
}

func (b *NATSBroker) Subscribe(ctx context.Context, handler func(Envelope)) error {
	sub, err := b.conn.Subscribe(natsSubjectPrefix+"*", func(msg *nats.Msg) {
		env, err := decodeEnvelope(msg.Data)
		if err != nil {
			logger.WorkerLog("nats_broker", "receive", err, "subject", msg.Subject)
			return
		}
		handler(env)
	})
	if err != nil {
		return fmt.Errorf("subscribe to NATS: %w", err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && b.conn.IsConnected() {
			logger.WorkerLog("nats_broker", "unsubscribe", err)
		}
	}()
	return nil
}

func (b *NATSBroker) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}
