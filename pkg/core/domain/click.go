package domain

import "time"

// ClickEvent is the immutable record of one visitor activating one link.
type ClickEvent struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	AccountID string    `json:"account_id"`
	ClickedAt time.Time `json:"clicked_at"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
}

// ClickMeta is optional request metadata attached to a click.
type ClickMeta struct {
	UserAgent string
	Referrer  string
	Country   string
	City      string
}
