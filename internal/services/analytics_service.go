package services

import (
	"time"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type bucketCount struct {
	Bucket string
	Count  int64
}

func (s *AnalyticsService) countBy(model interface{}, column string) (map[string]int64, error) {
	var rows []bucketCount
	err := s.db.Model(model).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Bucket] = r.Count
	}
	return out, nil
}

// ModerationMetrics aggregates flag and action volumes for the dashboard.
func (s *AnalyticsService) ModerationMetrics() (*dto.ModerationMetrics, error) {
	byStatus, err := s.countBy(&models.Flag{}, "status")
	if err != nil {
		return nil, err
	}
	byCategory, err := s.countBy(&models.Flag{}, "reason_category")
	if err != nil {
		return nil, err
	}
	byAction, err := s.countBy(&models.ModerationLog{}, "action")
	if err != nil {
		return nil, err
	}

	var total int64
	s.db.Model(&models.Flag{}).Count(&total)

	avg, err := s.avgResolutionHours()
	if err != nil {
		return nil, err
	}

	return &dto.ModerationMetrics{
		FlagsByStatus:      byStatus,
		FlagsByCategory:    byCategory,
		ActionsByType:      byAction,
		TotalFlags:         total,
		AvgResolutionHours: avg,
	}, nil
}

// avgResolutionHours averages the gap between a flag's creation and the
// action that settled it. Computed in Go because timestamp arithmetic is
// not portable between Postgres and the sqlite test driver.
func (s *AnalyticsService) avgResolutionHours() (float64, error) {
	var spans []struct {
		FlaggedAt time.Time
		ActedAt   time.Time
	}
	err := s.db.Model(&models.ModerationLog{}).
		Select("flags.created_at AS flagged_at, moderation_logs.created_at AS acted_at").
		Joins("JOIN flags ON flags.id = moderation_logs.flag_id").
		Scan(&spans).Error
	if err != nil {
		return 0, err
	}
	if len(spans) == 0 {
		return 0, nil
	}

	var totalHours float64
	for _, span := range spans {
		totalHours += span.ActedAt.Sub(span.FlaggedAt).Hours()
	}
	return totalHours / float64(len(spans)), nil
}

// CommunityStats aggregates user and post counts.
func (s *AnalyticsService) CommunityStats() (*dto.CommunityStats, error) {
	byRole, err := s.countBy(&models.User{}, "role")
	if err != nil {
		return nil, err
	}
	postsByStatus, err := s.countBy(&models.Post{}, "status")
	if err != nil {
		return nil, err
	}

	var totalUsers, totalPosts, flaggedPosts int64
	s.db.Model(&models.User{}).Count(&totalUsers)
	s.db.Model(&models.Post{}).Count(&totalPosts)
	s.db.Model(&models.Flag{}).Distinct("post_id").Count(&flaggedPosts)

	ratio := 0.0
	if totalPosts > 0 {
		ratio = float64(flaggedPosts) / float64(totalPosts)
	}

	return &dto.CommunityStats{
		TotalUsers:    totalUsers,
		UsersByRole:   byRole,
		PostsByStatus: postsByStatus,
		TotalPosts:    totalPosts,
		FlaggedRatio:  ratio,
	}, nil
}

// Trends returns daily post and flag volumes over the last N days.
func (s *AnalyticsService) Trends(days int) (*dto.TrendsResponse, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	postCounts, err := s.dailyCounts(&models.Post{}, since)
	if err != nil {
		return nil, err
	}
	flagCounts, err := s.dailyCounts(&models.Flag{}, since)
	if err != nil {
		return nil, err
	}

	points := make([]dto.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		points = append(points, dto.TrendPoint{
			Day:   day,
			Posts: postCounts[day],
			Flags: flagCounts[day],
		})
	}

	return &dto.TrendsResponse{Days: days, Points: points}, nil
}

func (s *AnalyticsService) dailyCounts(model interface{}, since time.Time) (map[string]int64, error) {
	var rows []bucketCount
	err := s.db.Model(model).
		Select("DATE(created_at) AS bucket, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		// Postgres returns dates with a time component through Scan.
		if len(r.Bucket) > 10 {
			r.Bucket = r.Bucket[:10]
		}
		out[r.Bucket] = r.Count
	}
	return out, nil
}
