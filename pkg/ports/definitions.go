package ports

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

// AccountRepository stores accounts. Lookups return (nil, nil) when nothing matches.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetAccountByHandle(ctx context.Context, handle string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error // domain.ErrHandleTaken on conflict
	DumpAccounts(ctx context.Context) ([]domain.Account, error)     // For migration
}

// LinkRepository stores links. Lookups return (nil, nil) when nothing matches.
type LinkRepository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	ListLinks(ctx context.Context, accountID string) ([]domain.Link, error) // rank asc, created_at asc
	CountLinks(ctx context.Context, accountID string) (int, error)
	UpdateLink(ctx context.Context, link *domain.Link) error
	// ReorderLinks assigns ranks 0..n-1 following linkIDs, all or nothing.
	ReorderLinks(ctx context.Context, accountID string, linkIDs []string, at time.Time) error
	DeleteLink(ctx context.Context, id string) error // Hard delete, click events stay
	// IncrementClicks adds one to the cached counter in a single atomic statement.
	// Returns false when the link no longer exists.
	IncrementClicks(ctx context.Context, linkID string) (bool, error)
	DumpLinks(ctx context.Context) ([]domain.Link, error) // For migration
}

// ClickRepository is the append-only click log.
type ClickRepository interface {
	InsertClick(ctx context.Context, click *domain.ClickEvent) error
	// ListAccountClicks returns events newer than or equal to since, newest first.
	ListAccountClicks(ctx context.Context, accountID string, since time.Time) ([]domain.ClickEvent, error)
	ListLinkClicks(ctx context.Context, linkID string, since time.Time) ([]domain.ClickEvent, error)
}

// Store is everything the services need from persistence.
type Store interface {
	AccountRepository
	LinkRepository
	ClickRepository
}

// LinkSuggester proposes candidate links from free text.
type LinkSuggester interface {
	SuggestLinks(ctx context.Context, prompt, profileContext string) ([]domain.LinkInput, error)
}

// RateLimiter counts hits for key inside a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

// ProfileService is the profile directory plus owner profile settings.
type ProfileService interface {
	ResolveHandle(ctx context.Context, handle string) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	SignUp(ctx context.Context, email, displayName, avatarURL string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error)
	SetTheme(ctx context.Context, accountID string, theme domain.Theme) (*domain.Account, error)
	SetEntitlement(ctx context.Context, accountID string, pro bool) (*domain.Account, error)
}

// LinkService manages an account's ordered link collection.
type LinkService interface {
	List(ctx context.Context, accountID string) ([]domain.Link, error)
	Create(ctx context.Context, accountID string, input domain.LinkInput) (*domain.Link, error)
	Update(ctx context.Context, accountID, linkID string, patch domain.LinkPatch) (*domain.Link, error)
	SetActive(ctx context.Context, accountID, linkID string, active bool) (*domain.Link, error)
	Reorder(ctx context.Context, accountID string, linkIDs []string) ([]domain.Link, error)
	Delete(ctx context.Context, accountID, linkID string) error
}

// ClickService records visitor clicks.
type ClickService interface {
	RecordClick(ctx context.Context, linkID, accountID string, meta domain.ClickMeta) (*domain.ClickEvent, error)
	Follow(ctx context.Context, linkID string, meta domain.ClickMeta) (string, error)
}

// AnalyticsService derives rollups from the click log.
type AnalyticsService interface {
	Aggregate(ctx context.Context, accountID string, windowDays int) (*domain.AnalyticsReport, error)
	LinkStats(ctx context.Context, accountID, linkID string, days int) (*domain.LinkStats, error)
}

// PublicService resolves the public page for a handle.
type PublicService interface {
	GetPublicProfile(ctx context.Context, handle string) (*domain.PublicProfile, error)
}

// SuggestionService turns a prompt into link drafts for the owner.
type SuggestionService interface {
	Suggest(ctx context.Context, accountID, prompt string) ([]domain.LinkInput, error)
}
