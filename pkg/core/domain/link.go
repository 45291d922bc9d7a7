package domain

import (
	"sort"
	"time"
)

// Link is one outbound entry on a profile page
type Link struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Icon        Icon      `json:"icon"`
	Active      bool      `json:"active"`
	Order       int       `json:"order"`
	Clicks      int64     `json:"clicks"` // Cached count of click events
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicLink hides owner-only fields from visitors.
type PublicLink struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Icon        Icon   `json:"icon"`
}

func (l *Link) Public() PublicLink {
	return PublicLink{
		ID:          l.ID,
		Title:       l.Title,
		URL:         l.URL,
		Description: l.Description,
		Icon:        l.Icon,
	}
}

// LinkInput carries the fields accepted on create.
type LinkInput struct {
	Title       string
	URL         string
	Description string
	Icon        string
}

// LinkPatch is a partial update; nil fields are left alone.
type LinkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Icon        *string
	Active      *bool
	Order       *int
}

// SortLinks orders links by rank, then creation time, then id.
func SortLinks(links []Link) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
