package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace_backend/internal/email"
	"marketplace_backend/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu   sync.Mutex
	sent []*email.Email
	err  error
}

func (p *fakeProvider) Send(ctx context.Context, msg *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakeProvider) Close() error { return nil }

func (p *fakeProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func TestNotificationWorkerDelivers(t *testing.T) {
	provider := &fakeProvider{}
	m := metrics.New()
	w := NewNotificationWorker(provider, 2, 10, m)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	for i := 0; i < 5; i++ {
		require.True(t, w.Enqueue(&email.Email{To: []string{"brand@example.com"}, Subject: "hi"}))
	}

	assert.Eventually(t, func() bool { return provider.count() == 5 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sent")))
}

func TestNotificationWorkerCountsFailures(t *testing.T) {
	provider := &fakeProvider{err: errors.New("smtp down")}
	m := metrics.New()
	w := NewNotificationWorker(provider, 1, 10, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.True(t, w.Enqueue(&email.Email{To: []string{"x@example.com"}}))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.Notifications.WithLabelValues("failed")) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotificationWorkerEnqueueNeverBlocks(t *testing.T) {
	provider := &fakeProvider{}
	m := metrics.New()
	// not started, so nothing drains the queue
	w := NewNotificationWorker(provider, 1, 2, m)

	assert.True(t, w.Enqueue(&email.Email{To: []string{"a@example.com"}}))
	assert.True(t, w.Enqueue(&email.Email{To: []string{"b@example.com"}}))

	done := make(chan bool, 1)
	go func() { done <- w.Enqueue(&email.Email{To: []string{"c@example.com"}}) }()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("dropped")))
}
