package biometric

import "context"

// RosterRepository reads the active employees the export is reconciled against.
type RosterRepository interface {
	GetActiveRoster(ctx context.Context, companyID string) ([]RosterEntry, error)
}
