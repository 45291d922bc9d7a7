package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

const linkColumns = `id, account_id, title, url, description, icon, active, sort_order, clicks, created_at, updated_at`

func scanLink(row rowScanner) (*domain.Link, error) {
	var l domain.Link
	var icon string
	if err := row.Scan(
		&l.ID, &l.AccountID, &l.Title, &l.URL, &l.Description, &icon, &l.Active, &l.Order,
		&l.Clicks, scanTime{&l.CreatedAt}, scanTime{&l.UpdatedAt},
	); err != nil {
		return nil, err
	}
	l.Icon = domain.ParseIcon(icon)
	return &l, nil
}

func (r *Repository) scanLinks(rows *sql.Rows) ([]domain.Link, error) {
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *Repository) CreateLink(ctx context.Context, l *domain.Link) error {
	query := `INSERT INTO links (` + linkColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.exec(ctx, query,
		l.ID, l.AccountID, l.Title, l.URL, l.Description, string(l.Icon), l.Active, l.Order,
		l.Clicks, r.dialect.timeArg(l.CreatedAt), r.dialect.timeArg(l.UpdatedAt),
	)
	return err
}

func (r *Repository) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	l, err := scanLink(r.queryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repository) ListLinks(ctx context.Context, accountID string) ([]domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE account_id = ?
			  ORDER BY sort_order ASC, created_at ASC, id ASC`

	rows, err := r.query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	return r.scanLinks(rows)
}

func (r *Repository) CountLinks(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.queryRow(ctx, `SELECT COUNT(*) FROM links WHERE account_id = ?`, accountID).Scan(&count)
	return count, err
}

// UpdateLink writes owner-editable fields only; clicks is left to IncrementClicks.
func (r *Repository) UpdateLink(ctx context.Context, l *domain.Link) error {
	query := `UPDATE links SET title = ?, url = ?, description = ?, icon = ?, active = ?, sort_order = ?,
			  updated_at = ? WHERE id = ?`

	res, err := r.exec(ctx, query,
		l.Title, l.URL, l.Description, string(l.Icon), l.Active, l.Order,
		r.dialect.timeArg(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ReorderLinks(ctx context.Context, accountID string, linkIDs []string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := r.dialect.rebind(`UPDATE links SET sort_order = ?, updated_at = ? WHERE id = ? AND account_id = ?`)
	for i, id := range linkIDs {
		res, err := tx.ExecContext(ctx, query, i, r.dialect.timeArg(at), id, accountID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrNotFound
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteLink(ctx context.Context, id string) error {
	_, err := r.exec(ctx, `DELETE FROM links WHERE id = ?`, id)
	return err
}

// IncrementClicks is a single UPDATE so concurrent clicks never lose updates.
func (r *Repository) IncrementClicks(ctx context.Context, linkID string) (bool, error) {
	res, err := r.exec(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = ?`, linkID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) DumpLinks(ctx context.Context) ([]domain.Link, error) {
	rows, err := r.query(ctx, `SELECT `+linkColumns+` FROM links ORDER BY account_id, sort_order, created_at`)
	if err != nil {
		return nil, err
	}
	return r.scanLinks(rows)
}
