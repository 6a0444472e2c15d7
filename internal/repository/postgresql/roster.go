package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/database"
)

const employmentStatusActive = "active"

type rosterRepositoryImpl struct {
	db           *database.DB
	queryTimeout time.Duration
}

// NewRosterRepository bounds each roster lookup with a transaction-local
// statement_timeout when queryTimeout is positive.
func NewRosterRepository(db *database.DB, queryTimeout time.Duration) biometric.RosterRepository {
	return &rosterRepositoryImpl{db: db, queryTimeout: queryTimeout}
}

// GetActiveRoster implements biometric.RosterRepository. The NIK is the
// document identifier printed by the time clock; the position name stands in
// for the department.
func (r *rosterRepositoryImpl) GetActiveRoster(ctx context.Context, companyID string) ([]biometric.RosterEntry, error) {
	if r.queryTimeout <= 0 {
		return r.queryRoster(ctx, companyID)
	}

	var entries []biometric.RosterEntry
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		timeout := strconv.FormatInt(r.queryTimeout.Milliseconds(), 10)
		if _, err := q.Exec(ctx, `SELECT set_config('statement_timeout', $1, true)`, timeout); err != nil {
			return fmt.Errorf("failed to set roster statement timeout: %w", err)
		}

		var err error
		entries, err = r.queryRoster(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *rosterRepositoryImpl) queryRoster(ctx context.Context, companyID string) ([]biometric.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.full_name, e.nik, COALESCE(p.name, ''), e.base_salary
		FROM employees e
		LEFT JOIN positions p ON p.id = e.position_id
		WHERE e.company_id = $1 AND e.employment_status = $2 AND e.deleted_at IS NULL
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, companyID, employmentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var entries []biometric.RosterEntry
	for rows.Next() {
		var entry biometric.RosterEntry
		if err := rows.Scan(&entry.EmployeeID, &entry.Name, &entry.DocumentID, &entry.Department, &entry.BaseSalary); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster rows: %w", err)
	}

	return entries, nil
}
