package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type LinkService struct {
	repo      ports.Store
	planLimit int // 0 disables the cap
	log       *logging.Log
	now       func() time.Time
}

func NewLinkService(repo ports.Store, planLimit int, log *logging.Log) *LinkService {
	return &LinkService{
		repo:      repo,
		planLimit: planLimit,
		log:       log.WithEntryName("LinkService"),
		now:       time.Now,
	}
}

func (s *LinkService) List(ctx context.Context, accountID string) ([]domain.Link, error) {
	links, err := s.repo.ListLinks(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []domain.Link{}
	}
	domain.SortLinks(links)
	return links, nil
}

func (s *LinkService) Create(ctx context.Context, accountID string, input domain.LinkInput) (*domain.Link, error) {
	title := strings.TrimSpace(input.Title)
	rawURL := strings.TrimSpace(input.URL)
	if title == "" || rawURL == "" {
		return nil, fmt.Errorf("%w: title and url are required", domain.ErrValidation)
	}

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, accountID)
	}

	count, err := s.repo.CountLinks(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsPro && s.planLimit > 0 && count >= s.planLimit {
		return nil, fmt.Errorf("%w: %d of %d", domain.ErrLimitExceeded, count, s.planLimit)
	}

	now := s.now().UTC()
	link := &domain.Link{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Title:       title,
		URL:         domain.NormalizeURL(rawURL),
		Description: strings.TrimSpace(input.Description),
		Icon:        domain.ParseIcon(strings.TrimSpace(input.Icon)),
		Active:      true,
		Order:       count,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ownedLink hides links of other accounts behind ErrNotFound.
func (s *LinkService) ownedLink(ctx context.Context, accountID, linkID string) (*domain.Link, error) {
	link, err := s.repo.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil || link.AccountID != accountID {
		return nil, fmt.Errorf("%w: link %s", domain.ErrNotFound, linkID)
	}
	return link, nil
}

func (s *LinkService) Update(ctx context.Context, accountID, linkID string, patch domain.LinkPatch) (*domain.Link, error) {
	link, err := s.ownedLink(ctx, accountID, linkID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
		}
		link.Title = title
	}
	if patch.URL != nil {
		rawURL := strings.TrimSpace(*patch.URL)
		if rawURL == "" {
			return nil, fmt.Errorf("%w: url is required", domain.ErrValidation)
		}
		link.URL = domain.NormalizeURL(rawURL)
	}
	if patch.Description != nil {
		link.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Icon != nil {
		link.Icon = domain.ParseIcon(strings.TrimSpace(*patch.Icon))
	}
	if patch.Active != nil {
		link.Active = *patch.Active
	}
	if patch.Order != nil {
		if *patch.Order < 0 {
			return nil, fmt.Errorf("%w: order must not be negative", domain.ErrValidation)
		}
		link.Order = *patch.Order
	}

	link.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) SetActive(ctx context.Context, accountID, linkID string, active bool) (*domain.Link, error) {
	return s.Update(ctx, accountID, linkID, domain.LinkPatch{Active: &active})
}

// Reorder takes every link id of the account exactly once, in the new display order.
func (s *LinkService) Reorder(ctx context.Context, accountID string, linkIDs []string) ([]domain.Link, error) {
	current, err := s.repo.ListLinks(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(linkIDs) != len(current) {
		return nil, fmt.Errorf("%w: expected %d link ids, got %d", domain.ErrValidation, len(current), len(linkIDs))
	}

	owned := make(map[string]bool, len(current))
	for _, l := range current {
		owned[l.ID] = true
	}
	seen := make(map[string]bool, len(linkIDs))
	for _, id := range linkIDs {
		if !owned[id] {
			return nil, fmt.Errorf("%w: link %s", domain.ErrNotFound, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate link id %s", domain.ErrValidation, id)
		}
		seen[id] = true
	}

	if err := s.repo.ReorderLinks(ctx, accountID, linkIDs, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.List(ctx, accountID)
}

// Delete removes the link. Its click events stay in the log.
func (s *LinkService) Delete(ctx context.Context, accountID, linkID string) error {
	if _, err := s.ownedLink(ctx, accountID, linkID); err != nil {
		return err
	}
	return s.repo.DeleteLink(ctx, linkID)
}

var _ ports.LinkService = (*LinkService)(nil)
