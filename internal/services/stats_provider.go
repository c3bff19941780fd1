package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
)

// StatsProvider fetches social-media statistics for an account.
type StatsProvider interface {
	FetchInstagramStats(ctx context.Context, username string) (*models.InstagramStats, error)
}

const (
	mockPostCount    = 10
	mockHistoryDays  = 30
	mockMinFollowers = 10000
)

// MockStatsProvider generates plausible random stats. It stands in for the
// Instagram Graph API until a real integration exists.
type MockStatsProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewMockStatsProvider returns a provider seeded from the clock. accessToken
// is only checked to tell operators that real data is not being fetched.
func NewMockStatsProvider(accessToken string) *MockStatsProvider {
	if accessToken == "" {
		logger.Warn("Instagram API credentials not configured, using mock stats")
	}
	return newMockStatsProvider(time.Now().UnixNano(), time.Now)
}

func newMockStatsProvider(seed int64, now func() time.Time) *MockStatsProvider {
	return &MockStatsProvider{
		rnd: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

func (p *MockStatsProvider) FetchInstagramStats(ctx context.Context, username string) (*models.InstagramStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now().UTC()
	day := 24 * time.Hour

	followers := p.rnd.Intn(100000) + mockMinFollowers
	stats := &models.InstagramStats{
		Followers:         followers,
		EngagementRate:    p.rnd.Float64()*5 + 1,
		Posts:             make([]models.PostStat, 0, mockPostCount),
		FollowersHistory:  make([]models.FollowersPoint, 0, mockHistoryDays),
		EngagementHistory: make([]models.EngagementPoint, 0, mockHistoryDays),
		LastUpdated:       &now,
	}

	for i := 0; i < mockPostCount; i++ {
		stats.Posts = append(stats.Posts, models.PostStat{
			Likes:    p.rnd.Intn(1000) + 50,
			Comments: p.rnd.Intn(100) + 5,
			Date:     now.Add(-time.Duration(i) * day),
		})
	}

	for i := 0; i < mockHistoryDays; i++ {
		date := now.Add(-time.Duration(i) * day)
		stats.FollowersHistory = append(stats.FollowersHistory, models.FollowersPoint{
			Count: followers + p.rnd.Intn(1000) - 500,
			Date:  date,
		})
		stats.EngagementHistory = append(stats.EngagementHistory, models.EngagementPoint{
			Rate: p.rnd.Float64()*5 + 1,
			Date: date,
		})
	}

	logger.CtxDebug(ctx, "Generated mock Instagram stats", "username", username, "followers", followers)
	return stats, nil
}
