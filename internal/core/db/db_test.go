package db

import (
	"context"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Queries {
	t.Helper()
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = MigrateUp(context.Background(), conn)
	require.NoError(t, err)

	q, err := LoadQueries(conn)
	require.NoError(t, err)
	return q
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantSource string
		wantErr    bool
	}{
		{"sqlite://data/app.db", DriverSQLite, "file:data/app.db?" + sqliteParams, false},
		{"sqlite:///var/lib/app.db", DriverSQLite, "file:/var/lib/app.db?" + sqliteParams, false},
		{"sqlite://app.db?cache=shared", DriverSQLite, "file:app.db?cache=shared&" + sqliteParams, false},
		{"postgres://u:p@localhost:5432/ak?sslmode=disable", DriverPostgres, "postgres://u:p@localhost:5432/ak?sslmode=disable", false},
		{"postgresql://localhost/ak", DriverPostgres, "postgresql://localhost/ak", false},
		{"mysql://localhost/ak", "", "", true},
		{"sqlite://", "", "", true},
	}
	for _, tt := range tests {
		driver, source, err := parseURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if driver != tt.wantDriver || source != tt.wantSource {
			t.Errorf("parseURL(%q) = %q, %q, want %q, %q", tt.url, driver, source, tt.wantDriver, tt.wantSource)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, sq.Question, Placeholder(conn))
}

func TestMigrateUp(t *testing.T) {
	ctx := context.Background()
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()

	statuses, err := MigrateStatus(ctx, conn)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.False(t, s.Applied, s.ID)
	}

	applied, err := MigrateUp(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, len(statuses), applied)

	// Second run is a no-op.
	applied, err = MigrateUp(ctx, conn)
	require.NoError(t, err)
	assert.Zero(t, applied)

	statuses, err = MigrateStatus(ctx, conn)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Applied, s.ID)
		require.NotNil(t, s.AppliedAt, s.ID)
		assert.False(t, s.AppliedAt.IsZero())
	}

	var tables []string
	require.NoError(t, conn.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	assert.Equal(t, []string{"campaigns", "communication_logs", "customers", "migrations", "segments"}, tables)
}

func TestMigrateUp_ChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = MigrateUp(ctx, conn)
	require.NoError(t, err)

	_, err = conn.Exec("UPDATE migrations SET checksum = 'tampered' WHERE migration_id = '001_initial_schema.sql'")
	require.NoError(t, err)

	_, err = MigrateUp(ctx, conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestSplitStatements(t *testing.T) {
	script := `-- header comment; with a semicolon
CREATE TABLE a (id TEXT);

-- second
CREATE INDEX idx_a ON a (id);
`
	got := splitStatements(script)
	want := []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX idx_a ON a (id)"}
	assert.Equal(t, want, got)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	q := openTemp(t)

	_, err := q.Raw("no-such-query")
	assert.Error(t, err)

	_, err = q.Exec(ctx, "insert-segment", "s1", "u1", "High value", "[]", 0,
		"2024-03-05T10:00:00.000000Z", "2024-03-05T10:00:00.000000Z")
	require.NoError(t, err)

	rows, err := q.Rows(ctx, "list-segments-by-user", "u1")
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var row struct {
		SegmentID    string `db:"segment_id"`
		UserID       string `db:"user_id"`
		Name         string `db:"name"`
		GroupsJSON   string `db:"groups_json"`
		AudienceSize int64  `db:"audience_size"`
		CreatedAt    string `db:"created_at"`
	}
	require.NoError(t, rows.StructScan(&row))
	assert.Equal(t, "High value", row.Name)
	assert.False(t, rows.Next())

	var n int
	require.NoError(t, q.Get(ctx, "count-customers", &n))
	assert.Zero(t, n)
}
