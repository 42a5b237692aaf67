package store

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/audiencekeeper/internal/core/db"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// customerRow mirrors the customers table; NULL columns are missing
// attributes.
type customerRow struct {
	CustomerID string          `db:"customer_id"`
	Name       string          `db:"name"`
	Email      string          `db:"email"`
	City       sql.NullString  `db:"city"`
	TotalSpend sql.NullFloat64 `db:"total_spend"`
	Visits     sql.NullInt64   `db:"visits"`
	LastVisit  sql.NullString  `db:"last_visit"`
	CreatedAt  string          `db:"created_at"`
}

func (r customerRow) profile() (types.CustomerProfile, error) {
	p := types.CustomerProfile{
		CustomerID: types.CustomerID(r.CustomerID),
		Name:       r.Name,
		Email:      r.Email,
	}
	if r.City.Valid {
		p.City = &r.City.String
	}
	if r.TotalSpend.Valid {
		p.TotalSpend = &r.TotalSpend.Float64
	}
	if r.Visits.Valid {
		p.Visits = &r.Visits.Int64
	}
	if r.LastVisit.Valid {
		d, err := time.Parse(segment.DateLayout, r.LastVisit.String)
		if err != nil {
			return p, fmt.Errorf("customer %s: invalid last_visit %q: %w", r.CustomerID, r.LastVisit.String, err)
		}
		p.LastVisit = &d
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return p, fmt.Errorf("customer %s: %w", r.CustomerID, err)
	}
	p.CreatedAt = createdAt
	return p, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullDate(p *time.Time) sql.NullString {
	if p == nil || p.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: p.UTC().Format(segment.DateLayout), Valid: true}
}

// UpsertCustomers inserts or updates a batch of customers in one
// transaction. Profiles without an ID get a generated one; CreatedAt
// defaults to now and is kept on update.
func (s *Store) UpsertCustomers(ctx context.Context, profiles []types.CustomerProfile) ([]types.CustomerID, error) {
	ids := make([]types.CustomerID, 0, len(profiles))
	now := time.Now()

	err := s.inTx(ctx, func(_ *sqlx.Tx, q *db.Queries) error {
		for i := range profiles {
			p := &profiles[i]
			if p.CustomerID == "" {
				p.CustomerID = types.NewCustomerID()
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
			}
			_, err := q.Exec(ctx, "upsert-customer",
				string(p.CustomerID), p.Name, p.Email,
				nullString(p.City), nullFloat(p.TotalSpend), nullInt(p.Visits), nullDate(p.LastVisit),
				FormatTime(p.CreatedAt))
			if err != nil {
				return fmt.Errorf("failed to upsert customer %s: %w", p.CustomerID, err)
			}
			ids = append(ids, p.CustomerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetCustomer loads one customer profile.
func (s *Store) GetCustomer(ctx context.Context, id types.CustomerID) (*types.CustomerProfile, error) {
	var row customerRow
	if err := s.queries.Get(ctx, "get-customer", &row, string(id)); err != nil {
		return nil, notFound(err, "customer "+string(id))
	}
	p, err := row.profile()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountCustomers returns the number of stored customers.
func (s *Store) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := s.queries.Get(ctx, "count-customers", &n); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}

// Customers returns a cursor over every stored customer in ID order.
func (s *Store) Customers(ctx context.Context) *CustomerCursor {
	return &CustomerCursor{store: s, ctx: ctx}
}

// CustomerCursor streams customers from the database. Each range over
// All issues a fresh query, so the sequence is restartable; Err reports
// the failure that ended the most recent pass, if any.
type CustomerCursor struct {
	store *Store
	ctx   context.Context

	mu  sync.Mutex
	err error
}

// All yields customers as attribute bags. Rows are closed as soon as the
// consumer stops ranging.
func (c *CustomerCursor) All() iter.Seq[types.Customer] {
	return func(yield func(types.Customer) bool) {
		c.setErr(nil)

		rows, err := c.store.queries.Rows(c.ctx, "stream-customers")
		if err != nil {
			c.setErr(fmt.Errorf("failed to stream customers: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row customerRow
			if err := rows.StructScan(&row); err != nil {
				c.setErr(fmt.Errorf("failed to scan customer: %w", err))
				return
			}
			p, err := row.profile()
			if err != nil {
				c.setErr(err)
				return
			}
			if !yield(p.Customer()) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			c.setErr(fmt.Errorf("failed to stream customers: %w", err))
		}
	}
}

// Err returns the error that ended the last pass over All.
func (c *CustomerCursor) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *CustomerCursor) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// CountMatching counts the audience of seg inside the database.
func (s *Store) CountMatching(ctx context.Context, seg *segment.CompiledSegment) (int, error) {
	pred, err := segment.ToSQL(seg)
	if err != nil {
		return 0, err
	}
	query, args, err := s.builder.Select("COUNT(*)").From("customers").Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build audience count: %w", err)
	}

	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count audience: %w", err)
	}
	return n, nil
}

// MatchingIDs returns the IDs of the audience of seg in ID order, evaluated
// inside the database. limit <= 0 returns every match.
func (s *Store) MatchingIDs(ctx context.Context, seg *segment.CompiledSegment, limit int) ([]types.CustomerID, error) {
	pred, err := segment.ToSQL(seg)
	if err != nil {
		return nil, err
	}
	b := s.builder.Select("customer_id").From("customers").Where(pred).OrderBy("customer_id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audience query: %w", err)
	}

	var ids []types.CustomerID
	if err := s.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select audience: %w", err)
	}
	return ids, nil
}
