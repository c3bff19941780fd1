package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStatsProvider_Shape(t *testing.T) {
	now := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	p := newMockStatsProvider(1, func() time.Time { return now })

	stats, err := p.FetchInstagramStats(context.Background(), "creator")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, stats.Followers, mockMinFollowers)
	assert.Less(t, stats.Followers, mockMinFollowers+100000)
	assert.GreaterOrEqual(t, stats.EngagementRate, 1.0)
	assert.Less(t, stats.EngagementRate, 6.0)
	assert.Len(t, stats.Posts, mockPostCount)
	assert.Len(t, stats.FollowersHistory, mockHistoryDays)
	assert.Len(t, stats.EngagementHistory, mockHistoryDays)
	require.NotNil(t, stats.LastUpdated)
	assert.True(t, now.Equal(*stats.LastUpdated))

	// Newest first, one day apart.
	assert.True(t, now.Equal(stats.Posts[0].Date))
	assert.Equal(t, 24*time.Hour, stats.Posts[0].Date.Sub(stats.Posts[1].Date))
	for _, point := range stats.FollowersHistory {
		assert.InDelta(t, stats.Followers, point.Count, 500)
	}
}

func TestMockStatsProvider_SeedIsDeterministic(t *testing.T) {
	now := func() time.Time { return time.Unix(0, 0) }
	a, err := newMockStatsProvider(7, now).FetchInstagramStats(context.Background(), "x")
	require.NoError(t, err)
	b, err := newMockStatsProvider(7, now).FetchInstagramStats(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
