package report

import (
	"fmt"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	attendanceSheet = "Attendance"
	deductionSheet  = "Deductions"
)

// RenderXLSX writes the attendance rows to an "Attendance" sheet and, when a
// summary is given, the per-employee amounts to a "Deductions" sheet.
func (s *ReportServiceImpl) RenderXLSX(req report.RenderRequest) (report.Document, error) {
	if err := req.Validate(); err != nil {
		return report.Document{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return report.Document{}, generationFailed(err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   title(req),
		Creator: req.Organization,
		Created: req.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return report.Document{}, generationFailed(err)
	}

	styles := newSheetStyles(f)
	if err := writeAttendanceSheet(f, styles, req); err != nil {
		return report.Document{}, generationFailed(err)
	}
	if req.Deductions != nil {
		if err := writeDeductionSheet(f, styles, *req.Deductions); err != nil {
			return report.Document{}, generationFailed(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return report.Document{}, generationFailed(err)
	}

	return report.Document{
		Filename:    filename(req.Report, report.FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func writeAttendanceSheet(f *excelize.File, styles *sheetStyles, req report.RenderRequest) error {
	cols := columnsFor(req.ShowDeductions())
	deductions := newDeductionIndex(req.Deductions)

	headers := make([]interface{}, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	if err := writeHeader(f, styles, attendanceSheet, headers); err != nil {
		return err
	}

	for i, rec := range req.Report.Records {
		d := deductions.lookup(rec)
		values := make([]interface{}, len(cols))
		for j, c := range cols {
			values[j] = xlsxValue(c.value(rec, d))
		}
		if err := setRow(f, attendanceSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(attendanceSheet, "A", "A", 16); err != nil {
		return err
	}
	return f.SetColWidth(attendanceSheet, "B", "C", 28)
}

func writeDeductionSheet(f *excelize.File, styles *sheetStyles, summary deduction.Summary) error {
	if _, err := f.NewSheet(deductionSheet); err != nil {
		return err
	}

	headers := []interface{}{
		"Name", "Document ID", "Effective Tardy Minutes", "Tardy Deduction",
		"Absence Days", "Absence Deduction", "Early Leave Minutes",
		"Early Leave Deduction", "Total Deduction", "Payable Deduction", "Capped",
	}
	if err := writeHeader(f, styles, deductionSheet, headers); err != nil {
		return err
	}

	row := 2
	for _, e := range summary.Employees {
		values := []interface{}{
			e.Name, e.DocumentID, e.EffectiveTardyMinutes, money64(e.TardyDeduction),
			e.AbsenceDays, money64(e.AbsenceDeduction), e.EarlyLeaveMinutes,
			money64(e.EarlyLeaveDeduction), money64(e.TotalDeduction), money64(e.PayableDeduction), e.Capped,
		}
		if err := setRow(f, deductionSheet, row, values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{
		"TOTAL", "", nil, money64(summary.TotalTardyDeduction),
		nil, money64(summary.TotalAbsenceDeduction), nil,
		money64(summary.TotalEarlyLeaveDeduction), money64(summary.GrandTotalDeduction), money64(summary.GrandTotalPayable), nil,
	}
	if err := setRow(f, deductionSheet, row, totals); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(totals), row)
	if err := f.SetCellStyle(deductionSheet, first, last, styles.total); err != nil {
		return err
	}

	return f.SetColWidth(deductionSheet, "A", "A", 28)
}

func writeHeader(f *excelize.File, styles *sheetStyles, sheet string, headers []interface{}) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, first, last, styles.header)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// xlsxValue keeps money numeric so the sheet can be summed.
func xlsxValue(v any) interface{} {
	if d, ok := v.(decimal.Decimal); ok {
		return money64(d)
	}
	return v
}

func money64(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

type sheetStyles struct {
	header int
	total  int
}

// newSheetStyles falls back to the default style when a style cannot be
// registered; formatting is cosmetic.
func newSheetStyles(f *excelize.File) *sheetStyles {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	total, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: border,
	})
	return &sheetStyles{header: header, total: total}
}

func generationFailed(err error) error {
	return fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
}
