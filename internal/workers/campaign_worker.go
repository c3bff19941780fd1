package workers

import (
	"context"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/repositories"

	"gorm.io/gorm"
)

// CampaignWorker closes active campaigns whose deadline has passed.
type CampaignWorker struct {
	db       *gorm.DB
	repo     repositories.CampaignRepository
	interval time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewCampaignWorker(db *gorm.DB, repo repositories.CampaignRepository, interval time.Duration, m *metrics.Metrics) *CampaignWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CampaignWorker{
		db:       db,
		repo:     repo,
		interval: interval,
		metrics:  m,
		now:      time.Now,
	}
}

// Start runs one pass immediately, then one per interval until ctx is done.
func (w *CampaignWorker) Start(ctx context.Context) {
	go w.autoCloseCampaigns(ctx)
}

func (w *CampaignWorker) autoCloseCampaigns(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.CloseExpired(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Campaign worker stopped")
			return
		case <-ticker.C:
			w.CloseExpired(ctx)
		}
	}
}

// CloseExpired runs a single pass and returns the number of campaigns closed.
func (w *CampaignWorker) CloseExpired(ctx context.Context) int64 {
	closed, err := w.repo.CloseExpired(w.db.WithContext(ctx), w.now().UTC())
	if err != nil {
		logger.WorkerLog("campaign_worker", "close_expired", err)
		return 0
	}
	if closed > 0 {
		if w.metrics != nil {
			w.metrics.CampaignsClosed.Add(float64(closed))
		}
		logger.WorkerLog("campaign_worker", "close_expired", nil, "closed", closed)
	}
	return closed
}
