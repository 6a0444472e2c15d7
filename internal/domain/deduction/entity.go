package deduction

import (
	"github.com/shopspring/decimal"
)

// Policy holds the monetary rules applied to attendance facts.
type Policy struct {
	TardyMinuteRate               decimal.Decimal `json:"tardy_minute_rate"`
	AbsenceDayRate                decimal.Decimal `json:"absence_day_rate"`
	EarlyLeaveMinuteRate          decimal.Decimal `json:"early_leave_minute_rate"`
	ToleranceMinutesPerOccurrence int             `json:"tolerance_minutes_per_occurrence"`

	// MaxDeductionPercent is advisory unless EnforceCap is set, in which case
	// the total is clamped to this percentage of the employee's base salary.
	MaxDeductionPercent decimal.Decimal `json:"max_deduction_percent"`
	EnforceCap          bool            `json:"enforce_cap"`

	Currency string `json:"currency"`
}

// DefaultPolicy returns the stock rates: 0.50 per tardy or early-leave
// minute, 100 per absence day, 10 minutes tolerance per tardy occurrence and
// an advisory cap of 10% of salary.
func DefaultPolicy() Policy {
	return Policy{
		TardyMinuteRate:               decimal.NewFromFloat(0.5),
		AbsenceDayRate:                decimal.NewFromInt(100),
		EarlyLeaveMinuteRate:          decimal.NewFromFloat(0.5),
		ToleranceMinutesPerOccurrence: 10,
		MaxDeductionPercent:           decimal.NewFromInt(10),
		EnforceCap:                    false,
		Currency:                      "USD",
	}
}

type EmployeeDeduction struct {
	EmployeeID            *string         `json:"employee_id"`
	Name                  string          `json:"name"`
	DocumentID            string          `json:"document_id"`
	RowNumber             int             `json:"row_number"`
	EffectiveTardyMinutes int             `json:"effective_tardy_minutes"`
	TardyDeduction        decimal.Decimal `json:"tardy_deduction"`
	AbsenceDays           int             `json:"absence_days"`
	AbsenceDeduction      decimal.Decimal `json:"absence_deduction"`
	EarlyLeaveMinutes     int             `json:"early_leave_minutes"`
	EarlyLeaveDeduction   decimal.Decimal `json:"early_leave_deduction"`
	TotalDeduction        decimal.Decimal `json:"total_deduction"`

	// PayableDeduction equals TotalDeduction unless the salary cap clamped it.
	PayableDeduction decimal.Decimal `json:"payable_deduction"`
	Capped           bool            `json:"capped"`
}

type Summary struct {
	TotalEmployees           int                 `json:"total_employees"`
	EmployeesWithDeductions  int                 `json:"employees_with_deductions"`
	TotalTardyDeduction      decimal.Decimal     `json:"total_tardy_deduction"`
	TotalAbsenceDeduction    decimal.Decimal     `json:"total_absence_deduction"`
	TotalEarlyLeaveDeduction decimal.Decimal     `json:"total_early_leave_deduction"`
	GrandTotalDeduction      decimal.Decimal     `json:"grand_total_deduction"`
	GrandTotalPayable        decimal.Decimal     `json:"grand_total_payable"`
	Currency                 string              `json:"currency"`
	Employees                []EmployeeDeduction `json:"employees"`
}

// HasDeductions reports whether any employee owes a nonzero amount.
func (s Summary) HasDeductions() bool {
	return s.EmployeesWithDeductions > 0
}
