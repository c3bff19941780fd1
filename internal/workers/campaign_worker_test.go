package workers

import (
	"context"
	"testing"
	"time"

	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	dbtest "marketplace_backend/internal/testutil"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignWorkerClosesExpired(t *testing.T) {
	db := dbtest.NewTestDB(t)
	_, brand := dbtest.CreateBrand(t, db)
	now := time.Now().UTC()

	expired := dbtest.CreateCampaign(t, db, brand, now.Add(-time.Hour))
	open := dbtest.CreateCampaign(t, db, brand, now.Add(time.Hour))
	completed := dbtest.CreateCampaign(t, db, brand, now.Add(-2*time.Hour))
	require.NoError(t, db.Model(completed).Update("status", models.CampaignStatusCompleted).Error)

	m := metrics.New()
	w := NewCampaignWorker(db, repositories.NewCampaignRepository(), time.Hour, m)
	w.now = func() time.Time { return now }

	assert.EqualValues(t, 1, w.CloseExpired(context.Background()))
	assert.EqualValues(t, 0, w.CloseExpired(context.Background()), "second pass has nothing to do")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CampaignsClosed))

	statusOf := func(c *models.Campaign) models.CampaignStatus {
		var got models.Campaign
		require.NoError(t, db.First(&got, "id = ?", c.ID).Error)
		return got.Status
	}
	assert.Equal(t, models.CampaignStatusClosed, statusOf(expired))
	assert.Equal(t, models.CampaignStatusActive, statusOf(open))
	assert.Equal(t, models.CampaignStatusCompleted, statusOf(completed))
}

func TestCampaignWorkerStopsWithContext(t *testing.T) {
	db := dbtest.NewTestDB(t)
	_, brand := dbtest.CreateBrand(t, db)
	expired := dbtest.CreateCampaign(t, db, brand, time.Now().UTC().Add(-time.Minute))

	w := NewCampaignWorker(db, repositories.NewCampaignRepository(), time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool {
		var got models.Campaign
		return db.First(&got, "id = ?", expired.ID).Error == nil && got.Status == models.CampaignStatusClosed
	}, 2*time.Second, 10*time.Millisecond, "the first pass runs on start")
	cancel()
}
