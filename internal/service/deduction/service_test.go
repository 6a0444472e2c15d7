package deduction

import (
	"math"
	"testing"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func report(records ...biometric.AttendanceRecord) biometric.ParsedReport {
	return biometric.NewParsedReport(biometric.ReportingPeriod{}, "", biometric.Schema{}, records, nil)
}

func TestCalculateEmployee_Tolerance(t *testing.T) {
	policy := deduction.DefaultPolicy()

	tests := []struct {
		name      string
		count     int
		minutes   int
		tolerance int
		effective int
	}{
		{"boundary", 2, 25, 10, 5},
		{"fully tolerated", 2, 20, 10, 0},
		{"below tolerance", 3, 5, 10, 0},
		{"no tolerance", 1, 15, 0, 15},
		{"negative tolerance treated as zero", 1, 15, -5, 15},
		{"huge count", math.MaxInt, 30, 10, 0},
		{"huge tolerance", 3, 30, math.MaxInt, 0},
		{"exact multiple", 3, 30, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy.ToleranceMinutesPerOccurrence = tt.tolerance
			d := CalculateEmployee(biometric.AttendanceRecord{TardyCount: tt.count, TardyMinutes: tt.minutes}, policy)
			assert.Equal(t, tt.effective, d.EffectiveTardyMinutes)
			assert.True(t, d.TardyDeduction.Equal(decimal.NewFromInt(int64(tt.effective)).Mul(policy.TardyMinuteRate)))
		})
	}
}

func TestCalculateEmployee_EarlyLeaveHasNoTolerance(t *testing.T) {
	d := CalculateEmployee(biometric.AttendanceRecord{EarlyLeaveCount: 1, EarlyLeaveMinutes: 8}, deduction.DefaultPolicy())
	assert.Equal(t, "4", d.EarlyLeaveDeduction.String())
	assert.True(t, d.TotalDeduction.Equal(d.EarlyLeaveDeduction))
	assert.True(t, d.PayableDeduction.Equal(d.TotalDeduction))
}

func TestCalculate_EndToEnd(t *testing.T) {
	policy := deduction.DefaultPolicy()
	policy.TardyMinuteRate = dec(t, "0.5")
	policy.ToleranceMinutesPerOccurrence = 10
	policy.AbsenceDayRate = dec(t, "100")

	r := report(
		biometric.AttendanceRecord{EmployeeID: ptr("a"), Matched: true, Name: "A", TardyCount: 1, TardyMinutes: 15},
		biometric.AttendanceRecord{EmployeeID: ptr("b"), Matched: true, Name: "B", AbsenceDays: 1},
		biometric.AttendanceRecord{EmployeeID: ptr("c"), Matched: true, Name: "C", TardyCount: 2, TardyMinutes: 5},
	)

	summary := NewDeductionService().Calculate(r, policy, nil)

	require.Len(t, summary.Employees, 3)
	byName := map[string]deduction.EmployeeDeduction{}
	for _, e := range summary.Employees {
		byName[e.Name] = e
	}
	assert.True(t, byName["A"].TotalDeduction.Equal(dec(t, "2.5")))
	assert.True(t, byName["B"].TotalDeduction.Equal(dec(t, "100")))
	assert.True(t, byName["C"].TotalDeduction.IsZero())

	assert.True(t, summary.GrandTotalDeduction.Equal(dec(t, "102.5")), summary.GrandTotalDeduction.String())
	assert.True(t, summary.GrandTotalPayable.Equal(summary.GrandTotalDeduction))
	assert.Equal(t, 3, summary.TotalEmployees)
	assert.Equal(t, 2, summary.EmployeesWithDeductions)
	assert.True(t, summary.HasDeductions())
	assert.Equal(t, []string{"B", "A", "C"}, []string{summary.Employees[0].Name, summary.Employees[1].Name, summary.Employees[2].Name})

	sum := summary.TotalTardyDeduction.Add(summary.TotalAbsenceDeduction).Add(summary.TotalEarlyLeaveDeduction)
	assert.True(t, sum.Equal(summary.GrandTotalDeduction))
	for _, e := range summary.Employees {
		assert.True(t, e.TotalDeduction.Equal(e.TardyDeduction.Add(e.AbsenceDeduction).Add(e.EarlyLeaveDeduction)))
		assert.False(t, e.TotalDeduction.IsNegative())
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	r := report(
		biometric.AttendanceRecord{Name: "A", TardyCount: 3, TardyMinutes: 70, EarlyLeaveMinutes: 12},
		biometric.AttendanceRecord{Name: "B", AbsenceDays: 2},
	)
	svc := NewDeductionService()
	first := svc.Calculate(r, deduction.DefaultPolicy(), nil)
	second := svc.Calculate(r, deduction.DefaultPolicy(), nil)
	assert.Equal(t, first, second)
}

func TestCalculate_StableOrder(t *testing.T) {
	r := report(
		biometric.AttendanceRecord{Name: "first", AbsenceDays: 1},
		biometric.AttendanceRecord{Name: "zero"},
		biometric.AttendanceRecord{Name: "second", AbsenceDays: 1},
		biometric.AttendanceRecord{Name: "third", AbsenceDays: 1},
	)
	summary := NewDeductionService().Calculate(r, deduction.DefaultPolicy(), nil)

	var names []string
	for _, e := range summary.Employees {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"first", "second", "third", "zero"}, names)
}

func TestCalculate_EmptyReport(t *testing.T) {
	summary := NewDeductionService().Calculate(report(), deduction.DefaultPolicy(), nil)
	assert.Zero(t, summary.TotalEmployees)
	assert.NotNil(t, summary.Employees)
	assert.True(t, summary.GrandTotalDeduction.IsZero())
	assert.False(t, summary.HasDeductions())
	assert.Equal(t, "USD", summary.Currency)
}

func TestCalculate_Cap(t *testing.T) {
	r := report(
		biometric.AttendanceRecord{EmployeeID: ptr("a"), Name: "capped", AbsenceDays: 3},
		biometric.AttendanceRecord{EmployeeID: ptr("b"), Name: "under", AbsenceDays: 1},
		biometric.AttendanceRecord{Name: "unmatched", AbsenceDays: 5},
	)
	salaries := map[string]decimal.Decimal{
		"a": dec(t, "2000"),
		"b": dec(t, "2000"),
	}

	t.Run("advisory by default", func(t *testing.T) {
		summary := NewDeductionService().Calculate(r, deduction.DefaultPolicy(), salaries)
		for _, e := range summary.Employees {
			assert.False(t, e.Capped)
			assert.True(t, e.PayableDeduction.Equal(e.TotalDeduction))
		}
	})

	t.Run("enforced", func(t *testing.T) {
		policy := deduction.DefaultPolicy()
		policy.EnforceCap = true
		summary := NewDeductionService().Calculate(r, policy, salaries)

		byName := map[string]deduction.EmployeeDeduction{}
		for _, e := range summary.Employees {
			byName[e.Name] = e
		}

		capped := byName["capped"]
		assert.True(t, capped.Capped)
		assert.True(t, capped.TotalDeduction.Equal(dec(t, "300")))
		assert.True(t, capped.PayableDeduction.Equal(dec(t, "200")))

		assert.False(t, byName["under"].Capped)
		assert.True(t, byName["under"].PayableDeduction.Equal(dec(t, "100")))

		assert.False(t, byName["unmatched"].Capped, "no salary known")
		assert.True(t, byName["unmatched"].PayableDeduction.Equal(dec(t, "500")))

		assert.True(t, summary.GrandTotalDeduction.Equal(dec(t, "900")))
		assert.True(t, summary.GrandTotalPayable.Equal(dec(t, "800")))
	})
}
