package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

type stubSuggester struct {
	drafts  []domain.LinkInput
	err     error
	context string
}

func (s *stubSuggester) SuggestLinks(_ context.Context, _, profileContext string) ([]domain.LinkInput, error) {
	s.context = profileContext
	return s.drafts, s.err
}

func TestSuggest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp(t, "alice")
	stub := &stubSuggester{drafts: []domain.LinkInput{
		{Title: "Portfolio", URL: "alice.dev", Icon: "Globe"},
		{Title: "", URL: "dropped.com"},
		{Title: "No url"},
		{Title: "YouTube", URL: "https://youtube.com/@alice", Icon: "youtube"},
		{Title: "3", URL: "3.com"},
		{Title: "4", URL: "4.com", Icon: "spaceship"},
		{Title: "5", URL: "5.com"},
		{Title: "6", URL: "6.com"},
	}}
	svc := NewSuggestionService(env.store, stub, logging.Discard())

	drafts, err := svc.Suggest(context.Background(), alice.ID, "I make videos")
	require.NoError(t, err)
	require.Len(t, drafts, 5)
	assert.Equal(t, "https://alice.dev", drafts[0].URL)
	assert.Equal(t, "globe", drafts[0].Icon)
	assert.Equal(t, "YouTube", drafts[1].Title)
	assert.Equal(t, "globe", drafts[3].Icon)
	assert.Equal(t, "5", drafts[4].Title)
	assert.Equal(t, "Name: alice, Bio: , Username: alice", stub.context)
}

func TestSuggestErrors(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signUp(t, "alice")
	ctx := context.Background()

	_, err := NewSuggestionService(env.store, nil, logging.Discard()).Suggest(ctx, alice.ID, "hi")
	assert.ErrorIs(t, err, domain.ErrSuggestionsUnavailable)

	svc := NewSuggestionService(env.store, &stubSuggester{err: errors.New("upstream 500")}, logging.Discard())
	_, err = svc.Suggest(ctx, alice.ID, "hi")
	assert.ErrorIs(t, err, domain.ErrSuggestionsUnavailable)

	_, err = svc.Suggest(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Suggest(ctx, alice.ID, strings.Repeat("x", maxPromptRunes+1))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Suggest(ctx, "missing", "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
