package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type ProfileService struct {
	repo ports.AccountRepository
	log  *logging.Log
	now  func() time.Time
}

func NewProfileService(repo ports.AccountRepository, log *logging.Log) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log.WithEntryName("ProfileService"),
		now:  time.Now,
	}
}

// ResolveHandle returns ErrNotFound for unknown handles and private accounts alike.
func (s *ProfileService) ResolveHandle(ctx context.Context, handle string) (*domain.Account, error) {
	h := domain.NormalizeHandle(handle)
	if h == "" {
		return nil, fmt.Errorf("%w: profile %q", domain.ErrNotFound, h)
	}

	account, err := s.repo.GetAccountByHandle(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("resolve handle: %w", err)
	}
	if account == nil || !account.IsPublic {
		return nil, fmt.Errorf("%w: profile %q", domain.ErrNotFound, h)
	}
	return account, nil
}

func (s *ProfileService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", domain.ErrNotFound, accountID)
	}
	return account, nil
}

// SignUp finds the account for email or creates a public standard one.
func (s *ProfileService) SignUp(ctx context.Context, email, displayName, avatarURL string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	existing, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	now := s.now().UTC()
	account := &domain.Account{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		Handle:      s.freeHandle(ctx, domain.HandleFromDisplayName(displayName)),
		AvatarURL:   strings.TrimSpace(avatarURL),
		Theme:       domain.ThemeDefault,
		IsPublic:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.CreateAccount(ctx, account)
	if errors.Is(err, domain.ErrHandleTaken) {
		// Lost a race for the derived handle; the owner can pick one later.
		account.Handle = ""
		err = s.repo.CreateAccount(ctx, account)
	}
	if err != nil {
		// A concurrent first login for the same email may have created it.
		if winner, lookupErr := s.repo.GetAccountByEmail(ctx, email); lookupErr == nil && winner != nil {
			return winner, nil
		}
		return nil, err
	}

	s.log.WithField("account_id", account.ID).WithField("handle", account.Handle).Info("account created")
	return account, nil
}

func (s *ProfileService) freeHandle(ctx context.Context, candidate string) string {
	if !domain.ValidHandle(candidate) {
		return ""
	}
	taken, err := s.repo.GetAccountByHandle(ctx, candidate)
	if err != nil || taken != nil {
		return ""
	}
	return candidate
}

func (s *ProfileService) UpdateProfile(ctx context.Context, accountID string, update domain.ProfileUpdate) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name is required", domain.ErrValidation)
		}
		account.DisplayName = name
	}
	if update.Handle != nil {
		h := domain.NormalizeHandle(*update.Handle)
		if h != "" && !domain.ValidHandle(h) {
			return nil, fmt.Errorf("%w: handle must be %d-%d lowercase letters or digits",
				domain.ErrValidation, domain.HandleMinLen, domain.HandleMaxLen)
		}
		if h != "" && h != account.Handle {
			owner, err := s.repo.GetAccountByHandle(ctx, h)
			if err != nil {
				return nil, err
			}
			if owner != nil && owner.ID != account.ID {
				return nil, fmt.Errorf("%w: %s", domain.ErrHandleTaken, h)
			}
		}
		account.Handle = h
	}
	if update.Bio != nil {
		account.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.AvatarURL != nil {
		account.AvatarURL = strings.TrimSpace(*update.AvatarURL)
	}
	if update.IsPublic != nil {
		account.IsPublic = *update.IsPublic
	}

	account.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *ProfileService) SetTheme(ctx context.Context, accountID string, theme domain.Theme) (*domain.Account, error) {
	if !theme.Valid() {
		return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrValidation, theme)
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if theme.Premium() && !account.IsPro {
		return nil, fmt.Errorf("%w: theme %q", domain.ErrUpgradeRequired, theme)
	}

	account.Theme = theme
	account.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SetEntitlement flips the upgrade flag. Downgrading also drops a premium theme.
func (s *ProfileService) SetEntitlement(ctx context.Context, accountID string, pro bool) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.IsPro = pro
	if !pro && account.Theme.Premium() {
		account.Theme = domain.ThemeDefault
	}
	account.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.WithField("account_id", account.ID).WithField("pro", pro).Info("entitlement changed")
	return account, nil
}

var _ ports.ProfileService = (*ProfileService)(nil)
