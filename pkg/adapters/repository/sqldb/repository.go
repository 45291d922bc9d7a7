package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"                   // PostgreSQL driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

// Repository implements every storage port on top of database/sql.
type Repository struct {
	db      *sql.DB
	dialect dialect
}

func NewRepository(dbURL string) (*Repository, error) {
	d := dialectFor(dbURL)

	db, err := sql.Open(d.driver, d.dsn(dbURL))
	if err != nil {
		return nil, err
	}
	d.configure(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	if err := migrate(ctx, db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", d.name, err)
	}

	return &Repository{db: db, dialect: d}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Dialect returns "sqlite", "libsql" or "postgres".
func (r *Repository) Dialect() string {
	return r.dialect.name
}

func migrate(ctx context.Context, db *sql.DB, d dialect) error {
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return r.db.ExecContext(ctx, r.dialect.rebind(query), args...)
}

func (r *Repository) query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.db.QueryContext(ctx, r.dialect.rebind(query), args...)
}

func (r *Repository) queryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return r.db.QueryRowContext(ctx, r.dialect.rebind(query), args...)
}

// isUniqueViolation detects constraint failures on the given column across drivers.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, column)
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "."+column)
}

// scanTime accepts whatever the driver hands back for a timestamp column.
type scanTime struct {
	t *time.Time
}

var timeLayouts = []string{
	sqliteTimeLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (s scanTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s.t = time.Time{}
		return nil
	case time.Time:
		*s.t = v.UTC()
		return nil
	case int64:
		*s.t = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (s scanTime) parse(v string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", v)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure interface compliance
var _ ports.Store = (*Repository)(nil)
