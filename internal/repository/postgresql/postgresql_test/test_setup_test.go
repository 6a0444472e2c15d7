package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/database"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/repository/postgresql"
)

// errRollback discards the work of a test transaction.
var errRollback = errors.New("rollback test transaction")

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is
// not set.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), database.PoolConfig{DSN: dsn, MaxConns: 2, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// inTempSchema runs fn in a transaction where employees and positions are
// temporary tables, so the test never touches real rows.
func inTempSchema(t *testing.T, db *database.DB, fn func(ctx context.Context) error) error {
	t.Helper()
	err := postgresql.WithTransaction(context.Background(), db, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, db)
		statements := []string{
			`CREATE TEMP TABLE positions (id TEXT PRIMARY KEY, company_id TEXT, name TEXT) ON COMMIT DROP`,
			`CREATE TEMP TABLE employees (
				id TEXT PRIMARY KEY, company_id TEXT, position_id TEXT, full_name TEXT, nik TEXT,
				employment_status TEXT, base_salary NUMERIC(15,2), deleted_at TIMESTAMPTZ
			) ON COMMIT DROP`,
		}
		for _, stmt := range statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create temp table: %w", err)
			}
		}
		if err := fn(ctx); err != nil {
			return err
		}
		return errRollback
	})
	if errors.Is(err, errRollback) {
		return nil
	}
	return err
}
