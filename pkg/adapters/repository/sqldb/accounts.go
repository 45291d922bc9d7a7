package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

const accountColumns = `id, email, display_name, handle, bio, avatar_url, theme, is_public, is_pro, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var handle sql.NullString
	var theme string
	if err := row.Scan(
		&a.ID, &a.Email, &a.DisplayName, &handle, &a.Bio, &a.AvatarURL, &theme,
		&a.IsPublic, &a.IsPro, scanTime{&a.CreatedAt}, scanTime{&a.UpdatedAt},
	); err != nil {
		return nil, err
	}
	a.Handle = handle.String
	a.Theme = domain.ParseTheme(theme)
	return &a, nil
}

func (r *Repository) CreateAccount(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.exec(ctx, query,
		a.ID, a.Email, a.DisplayName, nullString(a.Handle), a.Bio, a.AvatarURL, string(a.Theme),
		a.IsPublic, a.IsPro, r.dialect.timeArg(a.CreatedAt), r.dialect.timeArg(a.UpdatedAt),
	)
	if isUniqueViolation(err, "handle") {
		return fmt.Errorf("%w: %s", domain.ErrHandleTaken, a.Handle)
	}
	return err
}

func (r *Repository) getAccountWhere(ctx context.Context, where string, arg interface{}) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	a, err := scanAccount(r.queryRow(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return r.getAccountWhere(ctx, "id = ?", id)
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getAccountWhere(ctx, "email = ?", email)
}

func (r *Repository) GetAccountByHandle(ctx context.Context, handle string) (*domain.Account, error) {
	return r.getAccountWhere(ctx, "handle = ?", handle)
}

func (r *Repository) UpdateAccount(ctx context.Context, a *domain.Account) error {
	query := `UPDATE accounts SET display_name = ?, handle = ?, bio = ?, avatar_url = ?, theme = ?,
			  is_public = ?, is_pro = ?, updated_at = ? WHERE id = ?`

	res, err := r.exec(ctx, query,
		a.DisplayName, nullString(a.Handle), a.Bio, a.AvatarURL, string(a.Theme),
		a.IsPublic, a.IsPro, r.dialect.timeArg(a.UpdatedAt), a.ID,
	)
	if isUniqueViolation(err, "handle") {
		return fmt.Errorf("%w: %s", domain.ErrHandleTaken, a.Handle)
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DumpAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}
