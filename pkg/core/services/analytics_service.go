package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	maxReferrers      = 10
	day               = 24 * time.Hour
)

type AnalyticsService struct {
	repo ports.Store
	loc  *time.Location // for "today"
	now  func() time.Time
}

func NewAnalyticsService(repo ports.Store, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{repo: repo, loc: loc, now: time.Now}
}

func windowDays(days int) int {
	if days <= 0 {
		return defaultWindowDays
	}
	if days > maxWindowDays {
		return maxWindowDays
	}
	return days
}

func (s *AnalyticsService) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// Aggregate recomputes the report from the click log on every call.
// TotalClicks comes from each link's cached counter, never a recount.
func (s *AnalyticsService) Aggregate(ctx context.Context, accountID string, days int) (*domain.AnalyticsReport, error) {
	days = windowDays(days)
	now := s.now()

	links, err := s.repo.ListLinks(ctx, accountID)
	if err != nil {
		return nil, err
	}
	domain.SortLinks(links)

	events, err := s.repo.ListAccountClicks(ctx, accountID, now.Add(-time.Duration(days)*day))
	if err != nil {
		return nil, err
	}

	today := s.startOfDay(now)
	weekAgo := now.Add(-7 * day)

	rows := make([]domain.LinkAnalytics, len(links))
	index := make(map[string]*domain.LinkAnalytics, len(links))
	for i, l := range links {
		rows[i] = domain.LinkAnalytics{
			LinkID:      l.ID,
			Title:       l.Title,
			URL:         l.URL,
			Active:      l.Active,
			TotalClicks: l.Clicks,
		}
		index[l.ID] = &rows[i]
	}

	for _, e := range events {
		row, ok := index[e.LinkID]
		if !ok {
			continue // link deleted, history kept
		}
		row.RecentClicks++
		if !e.ClickedAt.Before(today) {
			row.ClicksToday++
		}
		if !e.ClickedAt.Before(weekAgo) {
			row.ClicksThisWeek++
		}
		if row.LastClicked == nil || e.ClickedAt.After(*row.LastClicked) {
			t := e.ClickedAt
			row.LastClicked = &t
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalClicks > rows[j].TotalClicks
	})

	report := &domain.AnalyticsReport{
		WindowDays:  days,
		Links:       rows,
		GeneratedAt: now.UTC(),
	}
	for _, r := range rows {
		report.TotalClicks += r.TotalClicks
		report.RecentClicks += r.RecentClicks
		report.ClicksToday += r.ClicksToday
		report.ClicksThisWeek += r.ClicksThisWeek
	}
	return report, nil
}

// LinkStats breaks one link's recent clicks down by referrer host and by day.
func (s *AnalyticsService) LinkStats(ctx context.Context, accountID, linkID string, days int) (*domain.LinkStats, error) {
	days = windowDays(days)

	link, err := s.repo.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil || link.AccountID != accountID {
		return nil, fmt.Errorf("%w: link %s", domain.ErrNotFound, linkID)
	}

	first := s.startOfDay(s.now()).AddDate(0, 0, -(days - 1))
	events, err := s.repo.ListLinkClicks(ctx, linkID, first)
	if err != nil {
		return nil, err
	}

	referrers := make(map[string]int64)
	perDay := make(map[string]int64)
	for _, e := range events {
		referrers[referrerHost(e.Referrer)]++
		perDay[e.ClickedAt.In(s.loc).Format("2006-01-02")]++
	}

	series := make([]domain.DailyClick, 0, days)
	for d := first; len(series) < days; d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		series = append(series, domain.DailyClick{Date: key, Count: perDay[key]})
	}

	return &domain.LinkStats{
		LinkID:      link.ID,
		TotalClicks: link.Clicks,
		Referrers:   topReferrers(referrers, maxReferrers),
		DailyClicks: series,
	}, nil
}

func referrerHost(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "Direct"
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ref
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func topReferrers(counts map[string]int64, n int) map[string]int64 {
	if len(counts) <= n {
		return counts
	}
	type kv struct {
		host  string
		count int64
	}
	all := make([]kv, 0, len(counts))
	for h, c := range counts {
		all = append(all, kv{h, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].host < all[j].host
	})

	top := make(map[string]int64, n)
	for _, e := range all[:n] {
		top[e.host] = e.count
	}
	return top
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
