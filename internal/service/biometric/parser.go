package biometric

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/workbook"
	"github.com/xuri/excelize/v2"
)

const minDocumentIDLength = 5

type workbookParserImpl struct {
	now              func() time.Time
	sheetStrategies  []workbook.SheetStrategy
	schemaStrategies []SchemaStrategy
}

// NewWorkbookParser returns a parser using the default sheet and schema
// strategies. now supplies the fallback reporting month.
func NewWorkbookParser(now func() time.Time) biometric.WorkbookParser {
	if now == nil {
		now = time.Now
	}
	return &workbookParserImpl{
		now:              now,
		sheetStrategies:  workbook.DefaultSheetStrategies,
		schemaStrategies: DefaultSchemaStrategies,
	}
}

// Parse implements biometric.WorkbookParser.
func (p *workbookParserImpl) Parse(data []byte) (biometric.ParsedWorkbook, error) {
	wb, err := workbook.Open(data)
	if err != nil {
		return biometric.ParsedWorkbook{}, biometric.NewParseError(biometric.ErrUnreadableFile, err)
	}

	sheet, err := wb.SelectSheet(p.sheetStrategies...)
	if err != nil {
		if errors.Is(err, workbook.ErrNoDataSheet) {
			return biometric.ParsedWorkbook{}, biometric.NewParseError(biometric.ErrNoDataSheet, nil)
		}
		return biometric.ParsedWorkbook{}, biometric.NewParseError(biometric.ErrUnreadableFile, err)
	}

	schema := DetectSchema(sheet.Rows, p.schemaStrategies...)
	period := ExtractPeriod(sheet.Rows, p.now())
	records, issues := ParseRows(sheet, schema)

	return biometric.ParsedWorkbook{
		SheetName: sheet.Name,
		Schema:    schema,
		Period:    period,
		Records:   records,
		Issues:    issues,
	}, nil
}

// ParseRows decodes every data row below the schema's header row. Rows with
// a missing or implausible identifier are skipped; malformed cells read as
// zero and are returned as issues.
func ParseRows(sheet workbook.Sheet, schema biometric.Schema) ([]biometric.AttendanceRecord, []biometric.CellIssue) {
	var (
		records []biometric.AttendanceRecord
		issues  []biometric.CellIssue
	)

	for r := schema.HeaderRow + 1; r < len(sheet.Rows); r++ {
		d := rowDecoder{sheet: sheet, row: r, cols: schema.Columns, issues: &issues}

		documentID := d.text(biometric.FieldDocumentID)
		if !isDataRowIdentifier(documentID) {
			continue
		}

		rec := biometric.AttendanceRecord{
			DocumentID: documentID,
			Name:       DecodeName(d.text(biometric.FieldName)),
			Department: DecodeName(d.text(biometric.FieldDepartment)),
			RowNumber:  r + 1,
		}

		rec.ScheduledMinutes = d.duration(biometric.FieldScheduledHours)
		rec.ActualMinutes = d.duration(biometric.FieldActualHours)
		rec.TardyCount = d.count(biometric.FieldTardyCount)
		rec.TardyMinutes = d.duration(biometric.FieldTardyMinutes)
		rec.EarlyLeaveCount = d.count(biometric.FieldEarlyLeaveCount)
		rec.EarlyLeaveMinutes = d.duration(biometric.FieldEarlyLeaveMinutes)
		rec.OvertimeWeekdayMinutes = d.duration(biometric.FieldOvertimeWeekday)
		rec.OvertimeHolidayMinutes = d.duration(biometric.FieldOvertimeHoliday)
		rec.ScheduledDays, rec.AttendedDays = d.dayPair(biometric.FieldDaysAttended)
		rec.EarlyLeaveDays = d.count(biometric.FieldEarlyLeaveDays)
		rec.AbsenceDays = d.count(biometric.FieldAbsences)
		rec.PermissionDays = d.count(biometric.FieldPermissions)

		records = append(records, rec)
	}

	return records, issues
}

// isDataRowIdentifier filters totals, blanks and section breaks: identifiers
// shorter than five characters or without any digit are not employees.
func isDataRowIdentifier(id string) bool {
	if len([]rune(id)) < minDocumentIDLength {
		return false
	}
	return strings.ContainsFunc(id, unicode.IsDigit)
}

type rowDecoder struct {
	sheet  workbook.Sheet
	row    int
	cols   biometric.ColumnMap
	issues *[]biometric.CellIssue
}

func (d rowDecoder) raw(f biometric.Field) (string, int) {
	col := d.cols.Column(f)
	if col < 0 {
		return "", col
	}
	return d.sheet.Cell(d.row, col).Text, col
}

func (d rowDecoder) text(f biometric.Field) string {
	raw, _ := d.raw(f)
	return strings.TrimSpace(raw)
}

func (d rowDecoder) duration(f biometric.Field) int {
	raw, col := d.raw(f)
	minutes, ok := DecodeDuration(raw)
	if !ok {
		d.report(f, col, raw, "expected H:MM duration")
	}
	return minutes
}

// count reads plain counts. Durations in count columns are reported and read
// as zero like any other malformed value.
func (d rowDecoder) count(f biometric.Field) int {
	raw, col := d.raw(f)
	n, ok := DecodeCount(raw)
	if !ok {
		d.report(f, col, raw, "expected non-negative integer")
	}
	return n
}

// dayPair reads "scheduled/actual". A bare integer is taken as attended days.
func (d rowDecoder) dayPair(f biometric.Field) (int, int) {
	raw, col := d.raw(f)
	scheduled, actual, ok := DecodeDayPair(raw)
	if ok {
		return scheduled, actual
	}
	if n, ok := DecodeCount(raw); ok {
		return 0, n
	}
	d.report(f, col, raw, "expected scheduled/actual day pair")
	return 0, 0
}

func (d rowDecoder) report(f biometric.Field, col int, raw, reason string) {
	column, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		column = ""
	}
	*d.issues = append(*d.issues, biometric.CellIssue{
		Row:    d.row + 1,
		Column: column,
		Field:  f,
		Raw:    raw,
		Reason: reason,
	})
}
