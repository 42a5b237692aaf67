// Package store persists segments, customers, campaigns and communication
// logs behind the named queries in internal/core/db.
//
// Timestamps are stored as fixed-width UTC text (timeLayout) in both
// dialects so ordering by created_at is lexical and portable. Customer
// last_visit is stored as a YYYY-MM-DD calendar date.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/solatis/audiencekeeper/internal/core/db"
	"github.com/solatis/audiencekeeper/internal/types"
)

// timeLayout keeps microsecond precision at a fixed width.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Store is the repository for every audiencekeeper table.
type Store struct {
	db      *sqlx.DB
	queries *db.Queries
	builder sq.StatementBuilderType
}

// New binds a store to an open, migrated database.
func New(conn *sqlx.DB) (*Store, error) {
	if conn == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	queries, err := db.LoadQueries(conn)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:      conn,
		queries: queries,
		builder: sq.StatementBuilder.PlaceholderFormat(db.Placeholder(conn)),
	}, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// inTx runs fn inside a transaction, committing when fn returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx, q *db.Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx, s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FormatTime renders t as stored: UTC, truncated to microseconds.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Microsecond).Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// notFound maps sql.ErrNoRows onto types.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// affected returns ErrNotFound when a statement touched no row.
func affected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	return nil
}
