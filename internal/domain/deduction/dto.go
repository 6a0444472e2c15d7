package deduction

import (
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PolicyRequest overrides individual fields of a base policy. Nil fields keep
// the base value.
type PolicyRequest struct {
	TardyMinuteRate               *decimal.Decimal `json:"tardy_minute_rate"`
	AbsenceDayRate                *decimal.Decimal `json:"absence_day_rate"`
	EarlyLeaveMinuteRate          *decimal.Decimal `json:"early_leave_minute_rate"`
	ToleranceMinutesPerOccurrence *int             `json:"tolerance_minutes_per_occurrence"`
	MaxDeductionPercent           *decimal.Decimal `json:"max_deduction_percent"`
	EnforceCap                    *bool            `json:"enforce_cap"`
}

func (r *PolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	checkRate := func(field string, v *decimal.Decimal) {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}
	checkRate("tardy_minute_rate", r.TardyMinuteRate)
	checkRate("absence_day_rate", r.AbsenceDayRate)
	checkRate("early_leave_minute_rate", r.EarlyLeaveMinuteRate)

	if r.ToleranceMinutesPerOccurrence != nil && *r.ToleranceMinutesPerOccurrence < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance_minutes_per_occurrence",
			Message: "tolerance_minutes_per_occurrence must not be negative",
		})
	}

	if r.MaxDeductionPercent != nil &&
		(r.MaxDeductionPercent.IsNegative() || r.MaxDeductionPercent.GreaterThan(decimal.NewFromInt(100))) {
		errs = append(errs, validator.ValidationError{
			Field:   "max_deduction_percent",
			Message: "max_deduction_percent must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply returns base with the request's non-nil fields applied.
func (r *PolicyRequest) Apply(base Policy) Policy {
	if r == nil {
		return base
	}
	if r.TardyMinuteRate != nil {
		base.TardyMinuteRate = *r.TardyMinuteRate
	}
	if r.AbsenceDayRate != nil {
		base.AbsenceDayRate = *r.AbsenceDayRate
	}
	if r.EarlyLeaveMinuteRate != nil {
		base.EarlyLeaveMinuteRate = *r.EarlyLeaveMinuteRate
	}
	if r.ToleranceMinutesPerOccurrence != nil {
		base.ToleranceMinutesPerOccurrence = *r.ToleranceMinutesPerOccurrence
	}
	if r.MaxDeductionPercent != nil {
		base.MaxDeductionPercent = *r.MaxDeductionPercent
	}
	if r.EnforceCap != nil {
		base.EnforceCap = *r.EnforceCap
	}
	return base
}
