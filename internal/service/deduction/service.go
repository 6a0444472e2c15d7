package deduction

import (
	"sort"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type DeductionServiceImpl struct{}

func NewDeductionService() deduction.DeductionService {
	return &DeductionServiceImpl{}
}

// Calculate implements deduction.DeductionService.
func (s *DeductionServiceImpl) Calculate(report biometric.ParsedReport, policy deduction.Policy, salaries map[string]decimal.Decimal) deduction.Summary {
	summary := deduction.Summary{
		TotalEmployees:           len(report.Records),
		TotalTardyDeduction:      decimal.Zero,
		TotalAbsenceDeduction:    decimal.Zero,
		TotalEarlyLeaveDeduction: decimal.Zero,
		GrandTotalDeduction:      decimal.Zero,
		GrandTotalPayable:        decimal.Zero,
		Currency:                 policy.Currency,
		Employees:                make([]deduction.EmployeeDeduction, 0, len(report.Records)),
	}

	for _, rec := range report.Records {
		d := CalculateEmployee(rec, policy)
		if policy.EnforceCap && rec.EmployeeID != nil {
			if salary, ok := salaries[*rec.EmployeeID]; ok {
				d = applyCap(d, salary, policy.MaxDeductionPercent)
			}
		}

		summary.TotalTardyDeduction = summary.TotalTardyDeduction.Add(d.TardyDeduction)
		summary.TotalAbsenceDeduction = summary.TotalAbsenceDeduction.Add(d.AbsenceDeduction)
		summary.TotalEarlyLeaveDeduction = summary.TotalEarlyLeaveDeduction.Add(d.EarlyLeaveDeduction)
		summary.GrandTotalDeduction = summary.GrandTotalDeduction.Add(d.TotalDeduction)
		summary.GrandTotalPayable = summary.GrandTotalPayable.Add(d.PayableDeduction)
		if d.TotalDeduction.IsPositive() {
			summary.EmployeesWithDeductions++
		}
		summary.Employees = append(summary.Employees, d)
	}

	sort.SliceStable(summary.Employees, func(i, j int) bool {
		return summary.Employees[i].TotalDeduction.GreaterThan(summary.Employees[j].TotalDeduction)
	})

	return summary
}

// CalculateEmployee applies the policy to a single record. Tolerance is
// granted once per tardy occurrence; early leave has no tolerance.
func CalculateEmployee(rec biometric.AttendanceRecord, policy deduction.Policy) deduction.EmployeeDeduction {
	effective := effectiveTardyMinutes(rec.TardyMinutes, rec.TardyCount, policy.ToleranceMinutesPerOccurrence)

	tardy := nonNegative(decimal.NewFromInt(int64(effective)).Mul(policy.TardyMinuteRate))
	absence := nonNegative(decimal.NewFromInt(int64(rec.AbsenceDays)).Mul(policy.AbsenceDayRate))
	earlyLeave := nonNegative(decimal.NewFromInt(int64(rec.EarlyLeaveMinutes)).Mul(policy.EarlyLeaveMinuteRate))

	total := tardy.Add(absence).Add(earlyLeave)

	return deduction.EmployeeDeduction{
		EmployeeID:            rec.EmployeeID,
		Name:                  rec.Name,
		DocumentID:            rec.DocumentID,
		RowNumber:             rec.RowNumber,
		EffectiveTardyMinutes: effective,
		TardyDeduction:        tardy,
		AbsenceDays:           rec.AbsenceDays,
		AbsenceDeduction:      absence,
		EarlyLeaveMinutes:     rec.EarlyLeaveMinutes,
		EarlyLeaveDeduction:   earlyLeave,
		TotalDeduction:        total,
		PayableDeduction:      total,
	}
}

// effectiveTardyMinutes is minutes less count*tolerance, floored at zero,
// without forming the product when it would exceed minutes.
func effectiveTardyMinutes(minutes, count, tolerance int) int {
	if minutes <= 0 {
		return 0
	}
	if count <= 0 || tolerance <= 0 {
		return minutes
	}
	if count > minutes/tolerance {
		return 0
	}
	return minutes - count*tolerance
}

// applyCap clamps the payable amount to percent of salary. TotalDeduction
// stays the sum of the categories.
func applyCap(d deduction.EmployeeDeduction, salary, percent decimal.Decimal) deduction.EmployeeDeduction {
	limit := nonNegative(salary.Mul(percent).Div(hundred).Round(2))
	if d.TotalDeduction.GreaterThan(limit) {
		d.PayableDeduction = limit
		d.Capped = true
	}
	return d
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
