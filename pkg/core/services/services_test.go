package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

const testPlanLimit = 5

type testEnv struct {
	store     *memStore
	clock     *fixedClock
	profiles  *ProfileService
	links     *LinkService
	clicks    *ClickService
	analytics *AnalyticsService
	public    *PublicService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logging.Discard()
	store := newMemStore()
	clock := &fixedClock{t: time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)}

	env := &testEnv{
		store:     store,
		clock:     clock,
		profiles:  NewProfileService(store, log),
		links:     NewLinkService(store, testPlanLimit, log),
		clicks:    NewClickService(store, log),
		analytics: NewAnalyticsService(store, time.UTC),
	}
	env.profiles.now = clock.Now
	env.links.now = clock.Now
	env.clicks.now = clock.Now
	env.analytics.now = clock.Now
	env.public = NewPublicService(env.profiles, env.links, log)
	return env
}

func (e *testEnv) signUp(t *testing.T, name string) *domain.Account {
	t.Helper()
	a, err := e.profiles.SignUp(context.Background(), name+"@example.com", name, "")
	require.NoError(t, err)
	return a
}

func (e *testEnv) createLinks(t *testing.T, accountID string, titles ...string) []*domain.Link {
	t.Helper()
	var out []*domain.Link
	for _, title := range titles {
		l, err := e.links.Create(context.Background(), accountID, domain.LinkInput{
			Title: title,
			URL:   "example.com/" + title,
		})
		require.NoError(t, err)
		out = append(out, l)
	}
	return out
}

func titlesOf(links []domain.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}

func publicTitles(links []domain.PublicLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}
