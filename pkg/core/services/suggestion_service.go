package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const (
	maxSuggestions = 5
	maxPromptRunes = 1000
)

type SuggestionService struct {
	accounts  ports.AccountRepository
	suggester ports.LinkSuggester // nil when no completion API is configured
	log       *logging.Log
}

func NewSuggestionService(accounts ports.AccountRepository, suggester ports.LinkSuggester, log *logging.Log) *SuggestionService {
	return &SuggestionService{
		accounts:  accounts,
		suggester: suggester,
		log:       log.WithEntryName("SuggestionService"),
	}
}

// Suggest returns at most five drafts. They are pre-filled input for LinkService.Create
// and go through its validation when saved.
func (s *SuggestionService) Suggest(ctx context.Context, accountID, prompt string) ([]domain.LinkInput, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(prompt) > maxPromptRunes {
		return nil, fmt.Errorf("%w: prompt longer than %d characters", domain.ErrValidation, maxPromptRunes)
	}
	if s.suggester == nil {
		return nil, domain.ErrSuggestionsUnavailable
	}

	account, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, accountID)
	}

	profileContext := fmt.Sprintf("Name: %s, Bio: %s, Username: %s", account.DisplayName, account.Bio, account.Handle)
	drafts, err := s.suggester.SuggestLinks(ctx, prompt, profileContext)
	if err != nil {
		s.log.WithRequest(ctx).WithErr(err).Error("suggestion request failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrSuggestionsUnavailable, err)
	}

	out := make([]domain.LinkInput, 0, maxSuggestions)
	for _, d := range drafts {
		title := strings.TrimSpace(d.Title)
		rawURL := strings.TrimSpace(d.URL)
		if title == "" || rawURL == "" {
			continue
		}
		out = append(out, domain.LinkInput{
			Title:       title,
			URL:         domain.NormalizeURL(rawURL),
			Description: strings.TrimSpace(d.Description),
			Icon:        string(domain.ParseIcon(strings.ToLower(strings.TrimSpace(d.Icon)))),
		})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

var _ ports.SuggestionService = (*SuggestionService)(nil)
