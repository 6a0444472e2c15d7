package report

import (
	"fmt"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// column is one field of the tabular exports (CSV and XLSX). value returns a
// string for free text, an int or decimal.Decimal for numbers, or a bool.
type column struct {
	header string
	value  func(rec biometric.AttendanceRecord, d *deduction.EmployeeDeduction) any
}

var attendanceColumns = []column{
	{"Document ID", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.DocumentID }},
	{"Name", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.Name }},
	{"Department", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.Department }},
	{"Scheduled Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.ScheduledMinutes }},
	{"Actual Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.ActualMinutes }},
	{"Tardy Count", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.TardyCount }},
	{"Tardy Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.TardyMinutes }},
	{"Early Leave Count", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.EarlyLeaveCount }},
	{"Early Leave Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.EarlyLeaveMinutes }},
	{"Overtime Weekday Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.OvertimeWeekdayMinutes }},
	{"Overtime Holiday Minutes", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.OvertimeHolidayMinutes }},
	{"Scheduled Days", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.ScheduledDays }},
	{"Attended Days", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.AttendedDays }},
	{"Absences", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.AbsenceDays }},
	{"Permissions", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.PermissionDays }},
	{"Matched", func(r biometric.AttendanceRecord, _ *deduction.EmployeeDeduction) any { return r.Matched }},
}

var deductionColumns = []column{
	moneyColumn("Tardy Deduction", func(d *deduction.EmployeeDeduction) decimal.Decimal { return d.TardyDeduction }),
	moneyColumn("Absence Deduction", func(d *deduction.EmployeeDeduction) decimal.Decimal { return d.AbsenceDeduction }),
	moneyColumn("Early Leave Deduction", func(d *deduction.EmployeeDeduction) decimal.Decimal { return d.EarlyLeaveDeduction }),
	moneyColumn("Total Deduction", func(d *deduction.EmployeeDeduction) decimal.Decimal { return d.TotalDeduction }),
	moneyColumn("Payable Deduction", func(d *deduction.EmployeeDeduction) decimal.Decimal { return d.PayableDeduction }),
}

// moneyColumn reads zero for records without a deduction.
func moneyColumn(header string, pick func(*deduction.EmployeeDeduction) decimal.Decimal) column {
	return column{header, func(_ biometric.AttendanceRecord, d *deduction.EmployeeDeduction) any {
		if d == nil {
			return decimal.Zero
		}
		return pick(d)
	}}
}

func columnsFor(showDeductions bool) []column {
	if !showDeductions {
		return attendanceColumns
	}
	cols := make([]column, 0, len(attendanceColumns)+len(deductionColumns))
	cols = append(cols, attendanceColumns...)
	return append(cols, deductionColumns...)
}

type recordKey struct {
	documentID string
	row        int
}

// deductionIndex pairs each record with its deduction. The summary is sorted
// by amount, so records are matched on document ID and sheet row.
type deductionIndex map[recordKey]*deduction.EmployeeDeduction

func newDeductionIndex(summary *deduction.Summary) deductionIndex {
	idx := make(deductionIndex)
	if summary == nil {
		return idx
	}
	for i := range summary.Employees {
		e := &summary.Employees[i]
		idx[recordKey{e.DocumentID, e.RowNumber}] = e
	}
	return idx
}

func (idx deductionIndex) lookup(rec biometric.AttendanceRecord) *deduction.EmployeeDeduction {
	return idx[recordKey{rec.DocumentID, rec.RowNumber}]
}

// formatMinutes renders minutes as H:MM, the notation of the time-clock export.
func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
