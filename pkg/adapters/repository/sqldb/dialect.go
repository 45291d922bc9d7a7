package sqldb

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// sqliteTimeLayout is fixed width so text comparison matches time order.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000Z07:00"

type dialect struct {
	name     string
	driver   string
	numbered bool // $1, $2 ... placeholders
	schema   []string
}

func dialectFor(dbURL string) dialect {
	switch {
	case strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://"):
		return postgresDialect
	case strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://"):
		return libsqlDialect
	default:
		return sqliteDialect
	}
}

func (d dialect) dsn(dbURL string) string {
	if d.name != "sqlite" || strings.Contains(dbURL, "busy_timeout") {
		return dbURL
	}
	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	return dbURL + sep + "_pragma=busy_timeout(5000)"
}

func (d dialect) configure(db *sql.DB) {
	switch d.name {
	case "sqlite":
		// One connection serialises writers and keeps in-memory databases alive.
		db.SetMaxOpenConns(1)
	case "postgres":
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(10 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}
}

// rebind rewrites ? placeholders for drivers that want numbered ones.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (d dialect) timeArg(t time.Time) interface{} {
	if d.name == "postgres" {
		return t.UTC()
	}
	return t.UTC().Format(sqliteTimeLayout)
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		handle TEXT UNIQUE,
		bio TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		theme TEXT NOT NULL DEFAULT 'default',
		is_public BOOLEAN NOT NULL DEFAULT 1,
		is_pro BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT 'globe',
		active BOOLEAN NOT NULL DEFAULT 1,
		sort_order INTEGER NOT NULL DEFAULT 0,
		clicks INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_account ON links(account_id, sort_order)`,
	`CREATE TABLE IF NOT EXISTS clicks (
		id TEXT PRIMARY KEY,
		link_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		clicked_at DATETIME NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_account_time ON clicks(account_id, clicked_at)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_link_time ON clicks(link_id, clicked_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		handle TEXT UNIQUE,
		bio TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		theme TEXT NOT NULL DEFAULT 'default',
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		is_pro BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT 'globe',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INTEGER NOT NULL DEFAULT 0,
		clicks BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_account ON links(account_id, sort_order)`,
	`CREATE TABLE IF NOT EXISTS clicks (
		id TEXT PRIMARY KEY,
		link_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		clicked_at TIMESTAMPTZ NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_account_time ON clicks(account_id, clicked_at)`,
	`CREATE INDEX IF NOT EXISTS idx_clicks_link_time ON clicks(link_id, clicked_at)`,
}

var (
	sqliteDialect   = dialect{name: "sqlite", driver: "sqlite", schema: sqliteSchema}
	libsqlDialect   = dialect{name: "libsql", driver: "libsql", schema: sqliteSchema}
	postgresDialect = dialect{name: "postgres", driver: "pgx", numbered: true, schema: postgresSchema}
)
