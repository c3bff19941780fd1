package app

import (
	"context"
	"sync"

	"marketplace_backend/internal/email"
)

// MockEmailProvider records sent messages instead of delivering them. Set Err
// to make every Send fail.
type MockEmailProvider struct {
	mu   sync.Mutex
	sent []*email.Email
	Err  error
}

func (m *MockEmailProvider) Send(ctx context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MockEmailProvider) Close() error { return nil }

// Sent returns a copy of the delivered messages.
func (m *MockEmailProvider) Sent() []*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Email(nil), m.sent...)
}
