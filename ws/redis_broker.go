package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"marketplace_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const redisChannelPrefix = "chat:"

// RedisBroker relays envelopes over Redis pub/sub, one channel per chat.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(addr, password string, db int) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &RedisBroker{client: client}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return b.client.Publish(ctx, redisChannelPrefix+env.ChatID, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, handler func(Envelope)) error {
	pubsub := b.client.PSubscribe(ctx, redisChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("subscribe to redis: %w", err)
	}

	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				env, err := decodeEnvelope([]byte(msg.Payload))
				if err != nil {
					logger.WorkerLog("redis_broker", "receive", err, "channel", msg.Channel)
					continue
				}
				if env.ChatID == "" {
					env.ChatID = strings.TrimPrefix(msg.Channel, redisChannelPrefix)
				}
				handler(env)
			}
		}
	}()
	return nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
