package biometric

// ParsedWorkbook is the unreconciled content of a time-clock export.
type ParsedWorkbook struct {
	SheetName string
	Schema    Schema
	Period    ReportingPeriod
	Records   []AttendanceRecord
	Issues    []CellIssue
}

// WorkbookParser decodes a spreadsheet payload into attendance records.
type WorkbookParser interface {
	// Parse fails with a *ParseError when the payload cannot be read or has no
	// usable sheet. Malformed cells never fail; they are reported as issues.
	Parse(data []byte) (ParsedWorkbook, error)
}
