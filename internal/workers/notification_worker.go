package workers

import (
	"context"
	"sync"
	"time"

	"marketplace_backend/internal/email"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
)

const sendTimeout = 30 * time.Second

// NotificationWorker delivers emails from a bounded queue on a fixed pool of
// goroutines. Enqueue never blocks the caller.
type NotificationWorker struct {
	provider email.Provider
	queue    chan *email.Email
	workers  int
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

func NewNotificationWorker(provider email.Provider, workers, queueSize int, m *metrics.Metrics) *NotificationWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &NotificationWorker{
		provider: provider,
		queue:    make(chan *email.Email, queueSize),
		workers:  workers,
		metrics:  m,
	}
}

// Start launches the pool. On ctx cancellation the workers drain what is
// already queued, then exit.
func (w *NotificationWorker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

// Enqueue reports false when the queue is full and the message was dropped.
func (w *NotificationWorker) Enqueue(msg *email.Email) bool {
	select {
	case w.queue <- msg:
		w.observeDepth()
		return true
	default:
		logger.Warn("Notification queue full, dropping message", "to", msg.To, "subject", msg.Subject)
		w.count("dropped")
		return false
	}
}

func (w *NotificationWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	for {
		select {
		case msg := <-w.queue:
			w.observeDepth()
			w.deliver(context.Background(), msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-w.queue:
					w.observeDepth()
					w.deliver(context.Background(), msg)
				default:
					logger.Info("Notification worker stopped", "worker_id", id)
					return
				}
			}
		}
	}
}

func (w *NotificationWorker) deliver(parent context.Context, msg *email.Email) {
	ctx, cancel := context.WithTimeout(parent, sendTimeout)
	defer cancel()

	if err := w.provider.Send(ctx, msg); err != nil {
		logger.WorkerLog("notification_worker", "send", err, "to", msg.To, "subject", msg.Subject)
		w.count("failed")
		return
	}
	w.count("sent")
}

func (w *NotificationWorker) count(result string) {
	if w.metrics != nil {
		w.metrics.Notifications.WithLabelValues(result).Inc()
	}
}

func (w *NotificationWorker) observeDepth() {
	if w.metrics != nil {
		w.metrics.NotificationQueue.Set(float64(len(w.queue)))
	}
}
