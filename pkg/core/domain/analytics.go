package domain

import "time"

// LinkAnalytics is derived on every read from the click log.
type LinkAnalytics struct {
	LinkID         string     `json:"link_id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Active         bool       `json:"active"`
	TotalClicks    int64      `json:"total_clicks"`
	RecentClicks   int64      `json:"recent_clicks"`
	ClicksToday    int64      `json:"clicks_today"`
	ClicksThisWeek int64      `json:"clicks_this_week"`
	LastClicked    *time.Time `json:"last_clicked,omitempty"`
}

type AnalyticsReport struct {
	WindowDays     int             `json:"window_days"`
	Links          []LinkAnalytics `json:"links"`
	TotalClicks    int64           `json:"total_clicks"`
	RecentClicks   int64           `json:"recent_clicks"`
	ClicksToday    int64           `json:"clicks_today"`
	ClicksThisWeek int64           `json:"clicks_this_week"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// LinkStats is the per-link breakdown shown on the link detail view.
type LinkStats struct {
	LinkID      string           `json:"link_id"`
	TotalClicks int64            `json:"total_clicks"`
	Referrers   map[string]int64 `json:"referrers"`    // count by host
	DailyClicks []DailyClick     `json:"daily_clicks"` // timeline, oldest first
}

type DailyClick struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}
