package services

import (
	"testing"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationMetrics(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	moderator := createUser(t, db, models.RoleModerator, 0)

	postA := createPost(t, db, author.ID, "post a")
	postB := createPost(t, db, author.ID, "post b")
	flagA := createPendingFlag(t, db, postA.ID, flagger.ID)
	createPendingFlag(t, db, postB.ID, flagger.ID)

	moderation := NewModerationService(db, realtime.NewHub())
	_, err := moderation.Action(moderator.ID, flagA.ID, &dto.ModerationActionRequest{Action: models.ActionApprove})
	require.NoError(t, err)

	metrics, err := svc.ModerationMetrics()
	require.NoError(t, err)
	assert.EqualValues(t, 2, metrics.TotalFlags)
	assert.EqualValues(t, 1, metrics.FlagsByStatus[models.FlagPending])
	assert.EqualValues(t, 1, metrics.FlagsByStatus[models.FlagApproved])
	assert.EqualValues(t, 2, metrics.FlagsByCategory["spam"])
	assert.EqualValues(t, 1, metrics.ActionsByType[models.ActionApprove])
	assert.GreaterOrEqual(t, metrics.AvgResolutionHours, 0.0)
}

func TestCommunityStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	author := createUser(t, db, models.RoleUser, 0)
	flagger := createUser(t, db, models.RoleUser, 0)
	createUser(t, db, models.RoleAdmin, 0)

	postA := createPost(t, db, author.ID, "flagged once")
	createPost(t, db, author.ID, "never flagged")
	removed := createPost(t, db, author.ID, "removed")
	require.NoError(t, db.Model(removed).Update("status", models.PostRemoved).Error)

	// Two flags on the same post count it once in the flagged ratio.
	createPendingFlag(t, db, postA.ID, flagger.ID)
	createPendingFlag(t, db, postA.ID, author.ID)

	stats, err := svc.CommunityStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.UsersByRole[models.RoleUser])
	assert.EqualValues(t, 1, stats.UsersByRole[models.RoleAdmin])
	assert.EqualValues(t, 3, stats.TotalPosts)
	assert.EqualValues(t, 2, stats.PostsByStatus[models.PostActive])
	assert.EqualValues(t, 1, stats.PostsByStatus[models.PostRemoved])
	assert.InDelta(t, 1.0/3.0, stats.FlaggedRatio, 1e-9)
}

func TestTrendsZeroFillsDays(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnalyticsService(db)

	author := createUser(t, db, models.RoleUser, 0)
	createPost(t, db, author.ID, "today's post")

	trends, err := svc.Trends(7)
	require.NoError(t, err)
	assert.Equal(t, 7, trends.Days)
	require.Len(t, trends.Points, 7)

	// Oldest first; today is the last point and carries the post.
	today := trends.Points[len(trends.Points)-1]
	assert.EqualValues(t, 1, today.Posts)
	var total int64
	for _, p := range trends.Points {
		total += p.Posts
	}
	assert.EqualValues(t, 1, total)
}

func TestTrendsClampsRange(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	trends, err := svc.Trends(0)
	require.NoError(t, err)
	assert.Equal(t, 30, trends.Days)
}
