package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

const (
	maxUserAgentLen = 512
	maxReferrerLen  = 1024
	maxGeoLen       = 64
)

type ClickService struct {
	repo ports.Store
	log  *logging.Log
	now  func() time.Time

	pending sync.WaitGroup
}

func NewClickService(repo ports.Store, log *logging.Log) *ClickService {
	return &ClickService{
		repo: repo,
		log:  log.WithEntryName("ClickService"),
		now:  time.Now,
	}
}

// RecordClick appends the event, then bumps the cached counter with one atomic update.
// A counter failure leaves the event in place; the log stays authoritative.
func (s *ClickService) RecordClick(ctx context.Context, linkID, accountID string, meta domain.ClickMeta) (*domain.ClickEvent, error) {
	link, err := s.repo.GetLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil || link.AccountID != accountID {
		return nil, fmt.Errorf("%w: link %s", domain.ErrNotFound, linkID)
	}

	event := &domain.ClickEvent{
		ID:        uuid.NewString(),
		LinkID:    link.ID,
		AccountID: link.AccountID,
		ClickedAt: s.now().UTC(),
		UserAgent: truncate(meta.UserAgent, maxUserAgentLen),
		Referrer:  truncate(meta.Referrer, maxReferrerLen),
		Country:   truncate(meta.Country, maxGeoLen),
		City:      truncate(meta.City, maxGeoLen),
	}
	if err := s.repo.InsertClick(ctx, event); err != nil {
		return nil, fmt.Errorf("append click: %w", err)
	}

	ok, err := s.repo.IncrementClicks(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("increment click counter: %w", err)
	}
	if !ok {
		s.log.WithField("link_id", link.ID).Warn("link deleted before counter update")
	}
	return event, nil
}

// Follow returns the destination of an active public link and records the click
// in the background. Recording errors never reach the caller.
func (s *ClickService) Follow(ctx context.Context, linkID string, meta domain.ClickMeta) (string, error) {
	link, err := s.repo.GetLink(ctx, linkID)
	if err != nil {
		return "", err
	}
	if link == nil || !link.Active {
		return "", fmt.Errorf("%w: link %s", domain.ErrNotFound, linkID)
	}

	account, err := s.repo.GetAccount(ctx, link.AccountID)
	if err != nil {
		return "", err
	}
	if account == nil || !account.IsPublic {
		return "", fmt.Errorf("%w: link %s", domain.ErrNotFound, linkID)
	}

	bg := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if _, err := s.RecordClick(bg, link.ID, link.AccountID, meta); err != nil {
			s.log.WithRequest(bg).WithErr(err).WithField("link_id", link.ID).Error("failed to record click")
		}
	}()

	return link.URL, nil
}

// Wait blocks until background click recordings started by Follow have finished.
func (s *ClickService) Wait() {
	s.pending.Wait()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
