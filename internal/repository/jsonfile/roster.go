// Package jsonfile serves the employee roster from a JSON file, for running
// imports without the employee database.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/shopspring/decimal"
)

type rosterFile struct {
	Employees []rosterEmployee `json:"employees"`
}

type rosterEmployee struct {
	ID         string           `json:"id"`
	CompanyID  string           `json:"company_id"`
	FullName   string           `json:"full_name"`
	DocumentID string           `json:"document_id"`
	Department string           `json:"department"`
	Status     string           `json:"employment_status"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
}

type rosterRepositoryImpl struct {
	path string
}

// NewRosterRepository reads path on every call, so edits to the file are
// picked up by the next import.
func NewRosterRepository(path string) biometric.RosterRepository {
	return &rosterRepositoryImpl{path: path}
}

// GetActiveRoster implements biometric.RosterRepository. Entries without a
// company match every company; a missing status counts as active.
func (r *rosterRepositoryImpl) GetActiveRoster(ctx context.Context, companyID string) ([]biometric.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode roster file %s: %w", r.path, err)
	}

	var entries []biometric.RosterEntry
	otherCompanies := 0
	for _, e := range file.Employees {
		if e.Status != "" && e.Status != "active" {
			continue
		}
		if e.CompanyID != "" && companyID != "" && e.CompanyID != companyID {
			otherCompanies++
			continue
		}
		entries = append(entries, biometric.RosterEntry{
			EmployeeID: e.ID,
			Name:       e.FullName,
			DocumentID: e.DocumentID,
			Department: e.Department,
			BaseSalary: e.BaseSalary,
		})
	}
	if len(entries) == 0 && otherCompanies > 0 {
		slog.Warn("roster has no entries for company",
			"company_id", companyID,
			"other_company_entries", otherCompanies,
			"path", r.path,
		)
	}
	return entries, nil
}
