package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

func (e *testEnv) addClick(t *testing.T, l *domain.Link, at time.Time, referrer string) {
	t.Helper()
	require.NoError(t, e.store.InsertClick(context.Background(), &domain.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    l.ID,
		AccountID: l.AccountID,
		ClickedAt: at,
		Referrer:  referrer,
	}))
	_, err := e.store.IncrementClicks(context.Background(), l.ID)
	require.NoError(t, err)
}

func TestAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signUp(t, "alice")
	links := env.createLinks(t, alice.ID, "quiet", "busy", "never")

	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	env.analytics.now = func() time.Time { return now }

	busy := links[1]
	// busy: one today, two more this week, one more in the window, one outside it.
	env.addClick(t, busy, now.Add(-time.Hour), "")
	env.addClick(t, busy, now.Add(-16*time.Hour), "")
	env.addClick(t, busy, now.Add(-3*24*time.Hour), "")
	env.addClick(t, busy, now.Add(-20*24*time.Hour), "")
	env.addClick(t, busy, now.Add(-45*24*time.Hour), "")
	env.addClick(t, links[0], now.Add(-10*time.Minute), "")

	report, err := env.analytics.Aggregate(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, report.WindowDays)
	require.Len(t, report.Links, 3)

	assert.Equal(t, "busy", report.Links[0].Title)
	assert.Equal(t, "quiet", report.Links[1].Title)
	assert.Equal(t, "never", report.Links[2].Title)

	b := report.Links[0]
	assert.Equal(t, int64(5), b.TotalClicks, "total comes from the cached counter")
	assert.Equal(t, int64(4), b.RecentClicks)
	assert.Equal(t, int64(1), b.ClicksToday)
	assert.Equal(t, int64(3), b.ClicksThisWeek)
	require.NotNil(t, b.LastClicked)
	assert.Equal(t, now.Add(-time.Hour), *b.LastClicked)

	assert.Nil(t, report.Links[2].LastClicked)
	assert.Equal(t, int64(6), report.TotalClicks)
	assert.Equal(t, int64(5), report.RecentClicks)
	assert.Equal(t, int64(2), report.ClicksToday)
	assert.Equal(t, int64(4), report.ClicksThisWeek)
}

func TestAggregateTodayUsesLocalMidnight(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp(t, "alice")
	l := env.createLinks(t, alice.ID, "one")[0]

	bangkok := time.FixedZone("ICT", 7*60*60)
	env.analytics.loc = bangkok
	// 01:00 local on June 10, which is 18:00 UTC June 9.
	now := time.Date(2026, 6, 10, 1, 0, 0, 0, bangkok)
	env.analytics.now = func() time.Time { return now }

	env.addClick(t, l, now.Add(-30*time.Minute), "") // 00:30 local, today
	env.addClick(t, l, now.Add(-2*time.Hour), "")    // 23:00 local yesterday

	report, err := env.analytics.Aggregate(context.Background(), alice.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.ClicksToday)
	assert.Equal(t, int64(2), report.ClicksThisWeek)
}

func TestAggregateWindowBounds(t *testing.T) {
	assert.Equal(t, 30, windowDays(-3))
	assert.Equal(t, 7, windowDays(7))
	assert.Equal(t, 365, windowDays(10000))
}

func TestAggregateIgnoresDeletedLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signUp(t, "alice")
	links := env.createLinks(t, alice.ID, "kept", "gone")
	env.addClick(t, links[1], env.clock.Now(), "")
	require.NoError(t, env.links.Delete(ctx, alice.ID, links[1].ID))

	report, err := env.analytics.Aggregate(ctx, alice.ID, 30)
	require.NoError(t, err)
	require.Len(t, report.Links, 1)
	assert.Equal(t, int64(0), report.RecentClicks)
}

func TestLinkStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	l := env.createLinks(t, alice.ID, "one")[0]

	now := time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)
	env.analytics.now = func() time.Time { return now }

	env.addClick(t, l, now.Add(-time.Hour), "https://www.instagram.com/alice")
	env.addClick(t, l, now.Add(-2*time.Hour), "https://instagram.com/p/1")
	env.addClick(t, l, now.Add(-26*time.Hour), "")
	env.addClick(t, l, now.Add(-10*24*time.Hour), "https://t.co/x")

	stats, err := env.analytics.LinkStats(ctx, alice.ID, l.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalClicks)
	assert.Equal(t, map[string]int64{"instagram.com": 2, "Direct": 1}, stats.Referrers)
	assert.Equal(t, []domain.DailyClick{
		{Date: "2026-06-08", Count: 0},
		{Date: "2026-06-09", Count: 1},
		{Date: "2026-06-10", Count: 2},
	}, stats.DailyClicks)

	_, err = env.analytics.LinkStats(ctx, bob.ID, l.ID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopReferrers(t *testing.T) {
	counts := map[string]int64{}
	for i, host := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		counts[host] = int64(i + 1)
	}
	top := topReferrers(counts, 10)
	assert.Len(t, top, 10)
	assert.NotContains(t, top, "a")
	assert.NotContains(t, top, "b")
	assert.Equal(t, int64(12), top["l"])

	assert.Equal(t, "Direct", referrerHost(" "))
	assert.Equal(t, "example.com", referrerHost("https://WWW.Example.com/path"))
	assert.Equal(t, "android-app", referrerHost("android-app"))
}
