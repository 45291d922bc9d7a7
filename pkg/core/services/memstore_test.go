package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

// memStore is an in-memory ports.Store. The err* fields inject failures.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	links    map[string]domain.Link
	clicks   []domain.ClickEvent

	errListLinks     error
	errCreateAccount error
	errIncrement     error
	errGetLink       error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]domain.Account),
		links:    make(map[string]domain.Link),
	}
}

var _ ports.Store = (*memStore)(nil)

func (m *memStore) CreateAccount(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errCreateAccount != nil {
		return m.errCreateAccount
	}
	for _, other := range m.accounts {
		if a.Handle != "" && other.Handle == a.Handle {
			return domain.ErrHandleTaken
		}
		if other.Email == a.Email {
			return errors.New("UNIQUE constraint failed: accounts.email")
		}
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *memStore) GetAccount(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memStore) findAccount(match func(domain.Account) bool) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if match(a) {
			a := a
			return &a
		}
	}
	return nil
}

func (m *memStore) GetAccountByEmail(_ context.Context, email string) (*domain.Account, error) {
	return m.findAccount(func(a domain.Account) bool { return a.Email == email }), nil
}

func (m *memStore) GetAccountByHandle(_ context.Context, handle string) (*domain.Account, error) {
	return m.findAccount(func(a domain.Account) bool { return a.Handle != "" && a.Handle == handle }), nil
}

func (m *memStore) UpdateAccount(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range m.accounts {
		if id != a.ID && a.Handle != "" && other.Handle == a.Handle {
			return domain.ErrHandleTaken
		}
	}
	m.accounts[a.ID] = *a
	return nil
}

func (m *memStore) DumpAccounts(_ context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) CreateLink(_ context.Context, l *domain.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[l.ID] = *l
	return nil
}

func (m *memStore) GetLink(_ context.Context, id string) (*domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errGetLink != nil {
		return nil, m.errGetLink
	}
	l, ok := m.links[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memStore) ListLinks(_ context.Context, accountID string) ([]domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errListLinks != nil {
		return nil, m.errListLinks
	}
	out := []domain.Link{}
	for _, l := range m.links {
		if l.AccountID == accountID {
			out = append(out, l)
		}
	}
	domain.SortLinks(out)
	return out, nil
}

func (m *memStore) CountLinks(ctx context.Context, accountID string) (int, error) {
	links, err := m.ListLinks(ctx, accountID)
	return len(links), err
}

func (m *memStore) UpdateLink(_ context.Context, l *domain.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.links[l.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *l
	updated.Clicks = cur.Clicks
	m.links[l.ID] = updated
	return nil
}

func (m *memStore) ReorderLinks(_ context.Context, accountID string, ids []string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if l, ok := m.links[id]; !ok || l.AccountID != accountID {
			return domain.ErrNotFound
		}
	}
	for i, id := range ids {
		l := m.links[id]
		l.Order = i
		l.UpdatedAt = at
		m.links[id] = l
	}
	return nil
}

func (m *memStore) DeleteLink(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.links, id)
	return nil
}

func (m *memStore) IncrementClicks(_ context.Context, linkID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errIncrement != nil {
		return false, m.errIncrement
	}
	l, ok := m.links[linkID]
	if !ok {
		return false, nil
	}
	l.Clicks++
	m.links[linkID] = l
	return true, nil
}

func (m *memStore) DumpLinks(_ context.Context) ([]domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Link
	for _, l := range m.links {
		out = append(out, l)
	}
	return out, nil
}

func (m *memStore) InsertClick(_ context.Context, c *domain.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks = append(m.clicks, *c)
	return nil
}

func (m *memStore) listClicks(match func(domain.ClickEvent) bool) []domain.ClickEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ClickEvent{}
	for i := len(m.clicks) - 1; i >= 0; i-- {
		if match(m.clicks[i]) {
			out = append(out, m.clicks[i])
		}
	}
	return out
}

func (m *memStore) ListAccountClicks(_ context.Context, accountID string, since time.Time) ([]domain.ClickEvent, error) {
	return m.listClicks(func(c domain.ClickEvent) bool {
		return c.AccountID == accountID && !c.ClickedAt.Before(since)
	}), nil
}

func (m *memStore) ListLinkClicks(_ context.Context, linkID string, since time.Time) ([]domain.ClickEvent, error) {
	return m.listClicks(func(c domain.ClickEvent) bool {
		return c.LinkID == linkID && !c.ClickedAt.Before(since)
	}), nil
}

func (m *memStore) clickCount(linkID string) int {
	return len(m.listClicks(func(c domain.ClickEvent) bool { return c.LinkID == linkID }))
}

// fixedClock advances by one millisecond per call so creation times are distinct.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}
