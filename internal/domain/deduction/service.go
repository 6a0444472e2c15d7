package deduction

import (
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/shopspring/decimal"
)

// DeductionService turns attendance facts into monetary deductions. It does
// no I/O and returns the same summary for the same inputs.
type DeductionService interface {
	// Calculate computes one deduction per record of the report. salaries is
	// keyed by employee ID and only consulted when the policy enforces the cap;
	// it may be nil.
	Calculate(report biometric.ParsedReport, policy Policy, salaries map[string]decimal.Decimal) Summary
}
