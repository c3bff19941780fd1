package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"marketplace_backend/internal/models"
	"marketplace_backend/internal/services/dto"
)

// recordingNotifications captures what would have been emailed.
type recordingNotifications struct {
	mu            sync.Mutex
	verifications map[string]string
	resets        map[string]string
	proposals     []string
}

func newRecordingNotifications() *recordingNotifications {
	return &recordingNotifications{
		verifications: make(map[string]string),
		resets:        make(map[string]string),
	}
}

func (r *recordingNotifications) NotifyProposalSubmitted(ctx context.Context, to, campaignTitle, influencerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.proposals = append(r.proposals, to)
}

func (r *recordingNotifications) SendEmailVerification(ctx context.Context, to, name, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifications[to] = token
}

func (r *recordingNotifications) SendPasswordReset(ctx context.Context, to, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets[to] = token
}

type publishedEvent struct {
	chatID string
	event  dto.ReceiveMessageEvent
	origin string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, chatID string, event dto.ReceiveMessageEvent, origin string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{chatID: chatID, event: event, origin: origin})
	return p.err
}

type failingStats struct{}

func (failingStats) FetchInstagramStats(ctx context.Context, username string) (*models.InstagramStats, error) {
	return nil, errors.New("instagram unavailable")
}

// clock is a settable time source for services with a now field.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func ptr[T any](v T) *T {
	return &v
}
