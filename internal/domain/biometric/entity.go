package biometric

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field is a semantic column of a time-clock statistics export.
type Field int

const (
	FieldDocumentID Field = iota
	FieldName
	FieldDepartment
	FieldScheduledHours
	FieldActualHours
	FieldTardyCount
	FieldTardyMinutes
	FieldEarlyLeaveCount
	FieldEarlyLeaveMinutes
	FieldOvertimeWeekday
	FieldOvertimeHoliday
	FieldDaysAttended
	FieldAbsences
	FieldPermissions
	FieldEarlyLeaveDays
)

var fieldNames = map[Field]string{
	FieldDocumentID:        "document_id",
	FieldName:              "name",
	FieldDepartment:        "department",
	FieldScheduledHours:    "scheduled_hours",
	FieldActualHours:       "actual_hours",
	FieldTardyCount:        "tardy_count",
	FieldTardyMinutes:      "tardy_minutes",
	FieldEarlyLeaveCount:   "early_leave_count",
	FieldEarlyLeaveMinutes: "early_leave_minutes",
	FieldOvertimeWeekday:   "overtime_weekday",
	FieldOvertimeHoliday:   "overtime_holiday",
	FieldDaysAttended:      "days_attended",
	FieldAbsences:          "absences",
	FieldPermissions:       "permissions",
	FieldEarlyLeaveDays:    "early_leave_days",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ColumnMap maps each detected field to its zero-based column index.
type ColumnMap map[Field]int

// Column returns the column of f, or -1 when the field was not detected.
func (m ColumnMap) Column(f Field) int {
	if col, ok := m[f]; ok {
		return col
	}
	return -1
}

// Layout names the detection strategy that produced a schema.
type Layout string

const (
	LayoutTwoRowHeader Layout = "two_row_header"
	LayoutSingleHeader Layout = "single_row_header"
	LayoutPositional   Layout = "positional"
)

// Schema is the result of header detection. Data rows start at HeaderRow+1.
type Schema struct {
	HeaderRow int       `json:"header_row"`
	Columns   ColumnMap `json:"columns"`
	Layout    Layout    `json:"layout"`
}

// ReportingPeriod is an inclusive range of calendar dates.
type ReportingPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p ReportingPeriod) String() string {
	return p.Start.Format("2006-01-02") + " ~ " + p.End.Format("2006-01-02")
}

type AttendanceRecord struct {
	EmployeeID             *string `json:"employee_id"`
	Name                   string  `json:"name"`
	DocumentID             string  `json:"document_id"`
	Department             string  `json:"department"`
	ScheduledMinutes       int     `json:"scheduled_minutes"`
	ActualMinutes          int     `json:"actual_minutes"`
	TardyCount             int     `json:"tardy_count"`
	TardyMinutes           int     `json:"tardy_minutes"`
	EarlyLeaveCount        int     `json:"early_leave_count"`
	EarlyLeaveMinutes      int     `json:"early_leave_minutes"`
	OvertimeWeekdayMinutes int     `json:"overtime_weekday_minutes"`
	OvertimeHolidayMinutes int     `json:"overtime_holiday_minutes"`
	ScheduledDays          int     `json:"scheduled_days"`
	AttendedDays           int     `json:"attended_days"`
	EarlyLeaveDays         int     `json:"early_leave_days"`
	AbsenceDays            int     `json:"absence_days"`
	PermissionDays         int     `json:"permission_days"`
	Matched                bool    `json:"matched"`
	RowNumber              int     `json:"row_number"`
}

// CellIssue records a cell that failed to decode and was read as zero.
type CellIssue struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Field  Field  `json:"field"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

type ReportSummary struct {
	TotalTardyMinutes      int `json:"total_tardy_minutes"`
	TotalAbsences          int `json:"total_absences"`
	TotalEarlyLeaveMinutes int `json:"total_early_leave_minutes"`
	TotalOvertimeMinutes   int `json:"total_overtime_minutes"`
}

// ParsedReport is the outcome of one import. It is built once by NewParsedReport
// and must not be modified afterwards.
type ParsedReport struct {
	Period             ReportingPeriod    `json:"period"`
	SheetName          string             `json:"sheet_name"`
	Schema             Schema             `json:"schema"`
	TotalEmployees     int                `json:"total_employees"`
	MatchedEmployees   int                `json:"matched_employees"`
	UnmatchedEmployees int                `json:"unmatched_employees"`
	Records            []AttendanceRecord `json:"records"`
	Summary            ReportSummary      `json:"summary"`
	Issues             []CellIssue        `json:"issues"`
}

// NewParsedReport derives the counts and the aggregate summary from records.
func NewParsedReport(period ReportingPeriod, sheetName string, schema Schema, records []AttendanceRecord, issues []CellIssue) ParsedReport {
	report := ParsedReport{
		Period:         period,
		SheetName:      sheetName,
		Schema:         schema,
		TotalEmployees: len(records),
		Records:        records,
		Issues:         issues,
	}

	for _, r := range records {
		if r.Matched {
			report.MatchedEmployees++
		}
		report.Summary.TotalTardyMinutes += r.TardyMinutes
		report.Summary.TotalAbsences += r.AbsenceDays
		report.Summary.TotalEarlyLeaveMinutes += r.EarlyLeaveMinutes
		report.Summary.TotalOvertimeMinutes += r.OvertimeWeekdayMinutes + r.OvertimeHolidayMinutes
	}
	report.UnmatchedEmployees = report.TotalEmployees - report.MatchedEmployees

	if report.Records == nil {
		report.Records = []AttendanceRecord{}
	}
	if report.Issues == nil {
		report.Issues = []CellIssue{}
	}

	return report
}

// RosterEntry is an active employee as known by the employee directory.
type RosterEntry struct {
	EmployeeID string
	Name       string
	DocumentID string
	Department string
	BaseSalary *decimal.Decimal
}

// Roster indexes active employees by normalised document identifier.
type Roster map[string]RosterEntry

func NewRoster(entries []RosterEntry) Roster {
	roster := make(Roster, len(entries))
	for _, e := range entries {
		key := NormalizeDocumentID(e.DocumentID)
		if key == "" {
			continue
		}
		roster[key] = e
	}
	return roster
}

func (r Roster) Lookup(documentID string) (RosterEntry, bool) {
	e, ok := r[NormalizeDocumentID(documentID)]
	return e, ok
}

// Salaries returns the known base salaries keyed by employee ID.
func (r Roster) Salaries() map[string]decimal.Decimal {
	salaries := make(map[string]decimal.Decimal)
	for _, e := range r {
		if e.BaseSalary != nil {
			salaries[e.EmployeeID] = *e.BaseSalary
		}
	}
	return salaries
}

var documentIDReplacer = strings.NewReplacer(" ", "", ".", "", "-", "")

// NormalizeDocumentID strips the punctuation exports and rosters disagree on.
func NormalizeDocumentID(id string) string {
	return strings.ToUpper(documentIDReplacer.Replace(strings.TrimSpace(id)))
}
