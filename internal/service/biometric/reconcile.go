package biometric

import (
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
)

// Reconcile matches records against the roster by document identifier. The
// input slice is left untouched. Matched records take the roster's name and
// department; unmatched ones keep what the export says.
func Reconcile(records []biometric.AttendanceRecord, roster biometric.Roster) []biometric.AttendanceRecord {
	out := make([]biometric.AttendanceRecord, len(records))
	for i, rec := range records {
		entry, ok := roster.Lookup(rec.DocumentID)
		if !ok {
			rec.EmployeeID = nil
			rec.Matched = false
			out[i] = rec
			continue
		}

		employeeID := entry.EmployeeID
		rec.EmployeeID = &employeeID
		rec.Name = entry.Name
		rec.Department = entry.Department
		rec.Matched = true
		out[i] = rec
	}
	return out
}
