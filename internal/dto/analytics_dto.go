package dto

type ModerationMetrics struct {
	FlagsByStatus   map[string]int64 `json:"flags_by_status"`
	FlagsByCategory map[string]int64 `json:"flags_by_category"`
	ActionsByType   map[string]int64 `json:"actions_by_type"`
	TotalFlags      int64            `json:"total_flags"`
	// AvgResolutionHours is the mean time from flag creation to the
	// moderation action that settled it, over all settled flags.
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
}

type CommunityStats struct {
	TotalUsers    int64            `json:"total_users"`
	UsersByRole   map[string]int64 `json:"users_by_role"`
	PostsByStatus map[string]int64 `json:"posts_by_status"`
	TotalPosts    int64            `json:"total_posts"`
	FlaggedRatio  float64          `json:"flagged_ratio"`
}

type TrendPoint struct {
	Day   string `json:"day"`
	Posts int64  `json:"posts"`
	Flags int64  `json:"flags"`
}

type TrendsResponse struct {
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}
