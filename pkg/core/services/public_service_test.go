package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

func TestAliceScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signUp(t, "alice")

	var created []*domain.Link
	for i := 1; i <= 5; i++ {
		l, err := env.links.Create(ctx, alice.ID, domain.LinkInput{
			Title: fmt.Sprintf("L%d", i),
			URL:   fmt.Sprintf("https://alice.example/%d", i),
		})
		require.NoError(t, err)
		created = append(created, l)
	}
	_, err := env.links.Create(ctx, alice.ID, domain.LinkInput{Title: "L6", URL: "https://alice.example/6"})
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	profile, err := env.public.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2", "L3", "L4", "L5"}, publicTitles(profile.Links))

	_, err = env.clicks.RecordClick(ctx, created[2].ID, alice.ID, domain.ClickMeta{})
	require.NoError(t, err)
	_, err = env.links.SetActive(ctx, alice.ID, created[2].ID, false)
	require.NoError(t, err)

	profile, err = env.public.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2", "L4", "L5"}, publicTitles(profile.Links))

	owner, err := env.links.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2", "L3", "L4", "L5"}, titlesOf(owner))
	assert.Equal(t, int64(1), owner[2].Clicks, "deactivation keeps the counter")
	assert.Equal(t, 1, env.store.clickCount(created[2].ID))
}

func TestPrivateProfileLooksUnknown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signUp(t, "alice")
	env.createLinks(t, alice.ID, "L1")
	_, err := env.profiles.UpdateProfile(ctx, alice.ID, domain.ProfileUpdate{IsPublic: boolPtr(false)})
	require.NoError(t, err)

	private, errPrivate := env.public.GetPublicProfile(ctx, "alice")
	unknown, errUnknown := env.public.GetPublicProfile(ctx, "zed")
	assert.Nil(t, private)
	assert.Nil(t, unknown)
	assert.ErrorIs(t, errPrivate, domain.ErrNotFound)
	assert.ErrorIs(t, errUnknown, domain.ErrNotFound)
	assert.Equal(t, errUnknown.Error(), fmt.Sprintf("%v: profile %q", domain.ErrNotFound, "zed"))
	assert.Equal(t, errPrivate.Error(), fmt.Sprintf("%v: profile %q", domain.ErrNotFound, "alice"))
}

func TestPublicProfileDegradesWhenLinksFail(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp(t, "alice")
	env.createLinks(t, alice.ID, "L1")
	env.store.errListLinks = errors.New("links table unavailable")

	profile, err := env.public.GetPublicProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Account.Handle)
	assert.NotNil(t, profile.Links)
	assert.Empty(t, profile.Links)
}
