package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"lang-portal/internal/studysession"
	"lang-portal/internal/studysession/sqlite/migrations"
)

// timeLayout is SQLite's datetime('now') format; every stored timestamp uses it.
const timeLayout = "2006-01-02 15:04:05"

var (
	_ studysession.SessionRepository = (*SQLiteStore)(nil)
	_ studysession.ReviewRepository  = (*SQLiteStore)(nil)
	_ studysession.CatalogRepository = (*SQLiteStore)(nil)
)

type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "lang_portal.db"
	}

	db, err := sqlx.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// A single connection serializes writers; every request runs in its own
	// transaction on it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrate(context.Background(), db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction and commits only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func exists(ctx context.Context, tx *sqlx.Tx, query string, id int64) (bool, error) {
	var found int
	err := tx.GetContext(ctx, &found, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(timeLayout, value, time.UTC)
	if err != nil {
		// Rows written by other tools may carry RFC 3339 timestamps.
		if alt, altErr := time.Parse(time.RFC3339Nano, value); altErr == nil {
			return alt.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

func optionalID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
