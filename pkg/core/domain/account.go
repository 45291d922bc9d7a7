package domain

import "time"

// Account is the owner of a public profile page.
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Handle      string    `json:"handle,omitempty"` // Empty when the owner has not picked one
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Theme       Theme     `json:"theme"`
	IsPublic    bool      `json:"is_public"`
	IsPro       bool      `json:"is_pro"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicAccount is the subset of an account shown to anonymous visitors.
type PublicAccount struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Theme       Theme  `json:"theme"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:          a.ID,
		Handle:      a.Handle,
		DisplayName: a.DisplayName,
		Bio:         a.Bio,
		AvatarURL:   a.AvatarURL,
		Theme:       a.Theme,
	}
}

// PublicProfile is what the profile page renders.
type PublicProfile struct {
	Account PublicAccount `json:"profile"`
	Links   []PublicLink  `json:"links"`
}

// ProfileUpdate is a partial update of owner-editable profile fields.
type ProfileUpdate struct {
	DisplayName *string
	Handle      *string
	Bio         *string
	AvatarURL   *string
	IsPublic    *bool
}
