package sqldb

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
)

const clickColumns = `id, link_id, account_id, clicked_at, user_agent, referrer, country, city`

func (r *Repository) InsertClick(ctx context.Context, c *domain.ClickEvent) error {
	query := `INSERT INTO clicks (` + clickColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.exec(ctx, query,
		c.ID, c.LinkID, c.AccountID, r.dialect.timeArg(c.ClickedAt), c.UserAgent, c.Referrer, c.Country, c.City,
	)
	return err
}

func (r *Repository) ListAccountClicks(ctx context.Context, accountID string, since time.Time) ([]domain.ClickEvent, error) {
	query := `SELECT ` + clickColumns + ` FROM clicks WHERE account_id = ? AND clicked_at >= ? ORDER BY clicked_at DESC`
	return r.listClicks(ctx, query, accountID, r.dialect.timeArg(since))
}

func (r *Repository) ListLinkClicks(ctx context.Context, linkID string, since time.Time) ([]domain.ClickEvent, error) {
	query := `SELECT ` + clickColumns + ` FROM clicks WHERE link_id = ? AND clicked_at >= ? ORDER BY clicked_at DESC`
	return r.listClicks(ctx, query, linkID, r.dialect.timeArg(since))
}

func (r *Repository) listClicks(ctx context.Context, query string, args ...interface{}) ([]domain.ClickEvent, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := []domain.ClickEvent{}
	for rows.Next() {
		var c domain.ClickEvent
		if err := rows.Scan(&c.ID, &c.LinkID, &c.AccountID, scanTime{&c.ClickedAt}, &c.UserAgent, &c.Referrer, &c.Country, &c.City); err != nil {
			return nil, err
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}
