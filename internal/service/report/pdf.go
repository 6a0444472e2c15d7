package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/shopspring/decimal"
)

const (
	pdfMargin       = 10.0
	pdfBottomMargin = 15.0
	pdfRowHeight    = 6.0

	detailNameWidth    = 22
	deductionNameWidth = 25
	departmentWidth    = 10
)

type pdfColumn struct {
	header string
	width  float64
	align  string
}

var (
	detailColumns = []pdfColumn{
		{"Document", 22, "L"},
		{"Name", 45, "L"},
		{"Dept.", 22, "L"},
		{"Sched.", 17, "R"},
		{"Actual", 17, "R"},
		{"Tardies", 14, "R"},
		{"Tardy", 16, "R"},
		{"Early", 16, "R"},
		{"Days", 11, "R"},
		{"Abs.", 10, "R"},
	}
	detailColumnsWithDeduction = []pdfColumn{
		{"Document", 20, "L"},
		{"Name", 40, "L"},
		{"Dept.", 20, "L"},
		{"Sched.", 15, "R"},
		{"Actual", 15, "R"},
		{"Tardies", 12, "R"},
		{"Tardy", 15, "R"},
		{"Early", 15, "R"},
		{"Days", 10, "R"},
		{"Abs.", 9, "R"},
		{"Deduct.", 19, "R"},
	}
	deductionTableColumns = []pdfColumn{
		{"Name", 46, "L"},
		{"Document", 22, "L"},
		{"Eff. min", 16, "R"},
		{"Tardy", 22, "R"},
		{"Abs.", 12, "R"},
		{"Absence", 24, "R"},
		{"Early leave", 24, "R"},
		{"Total", 24, "R"},
	}
)

// pdfWriter wraps an fpdf document with the table helpers the report uses.
// Text goes through tr so accented names survive the core fonts.
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// RenderPDF lays out the title block, the summary, the per-record detail
// table and, when anyone owes money, the deductions table.
func (s *ReportServiceImpl) RenderPDF(req report.RenderRequest) (report.Document, error) {
	if err := req.Validate(); err != nil {
		return report.Document{}, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.SetCreationDate(req.GeneratedAt)
	pdf.SetTitle(title(req), true)
	pdf.SetAuthor(req.Organization, true)
	pdf.AliasNbPages("")

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfBottomMargin + 3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w.titleBlock(req)
	w.summaryTable(req)
	w.detailTable(req)

	if req.Deductions != nil && req.Deductions.HasDeductions() {
		w.deductionsTable(*req.Deductions)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return report.Document{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	return report.Document{
		Filename:    filename(req.Report, report.FormatPDF),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
		Pages:       pdf.PageNo(),
	}, nil
}

func (w *pdfWriter) titleBlock(req report.RenderRequest) {
	w.pdf.SetFont("Helvetica", "B", 14)
	w.pdf.CellFormat(0, 8, w.tr(req.Organization), "", 1, "C", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 12)
	w.pdf.CellFormat(0, 7, w.tr(title(req)), "", 1, "C", false, 0, "")
	w.pdf.SetFont("Helvetica", "", 9)
	w.pdf.CellFormat(0, 5, "Period: "+req.Report.Period.String(), "", 1, "C", false, 0, "")
	w.pdf.CellFormat(0, 5, "Generated: "+req.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	w.pdf.Ln(4)
}

func (w *pdfWriter) summaryTable(req report.RenderRequest) {
	r := req.Report
	rows := [][2]string{
		{"Total employees", strconv.Itoa(r.TotalEmployees)},
		{"Matched employees", strconv.Itoa(r.MatchedEmployees)},
		{"Unmatched employees", strconv.Itoa(r.UnmatchedEmployees)},
		{"Total tardy time", formatMinutes(r.Summary.TotalTardyMinutes)},
		{"Total absences", strconv.Itoa(r.Summary.TotalAbsences)},
		{"Total early leave time", formatMinutes(r.Summary.TotalEarlyLeaveMinutes)},
		{"Total overtime", formatMinutes(r.Summary.TotalOvertimeMinutes)},
	}
	if d := req.Deductions; d != nil {
		rows = append(rows,
			[2]string{"Employees with deductions", strconv.Itoa(d.EmployeesWithDeductions)},
			[2]string{"Tardy deductions", money(d.TotalTardyDeduction, d.Currency)},
			[2]string{"Absence deductions", money(d.TotalAbsenceDeduction, d.Currency)},
			[2]string{"Early leave deductions", money(d.TotalEarlyLeaveDeduction, d.Currency)},
			[2]string{"Grand total", money(d.GrandTotalDeduction, d.Currency)},
		)
		if !d.GrandTotalPayable.Equal(d.GrandTotalDeduction) {
			rows = append(rows, [2]string{"Payable after cap", money(d.GrandTotalPayable, d.Currency)})
		}
	}

	w.sectionHeading("Summary")
	w.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		w.pdf.CellFormat(60, pdfRowHeight, row[0], "1", 0, "L", false, 0, "")
		w.pdf.CellFormat(40, pdfRowHeight, row[1], "1", 1, "R", false, 0, "")
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) detailTable(req report.RenderRequest) {
	cols := detailColumns
	if req.ShowDeductions() {
		cols = detailColumnsWithDeduction
	}
	deductions := newDeductionIndex(req.Deductions)

	w.sectionHeading("Detail")
	w.tableHeader(cols)
	for _, rec := range req.Report.Records {
		cells := []string{
			rec.DocumentID,
			truncate(rec.Name, detailNameWidth),
			truncate(rec.Department, departmentWidth),
			formatMinutes(rec.ScheduledMinutes),
			formatMinutes(rec.ActualMinutes),
			strconv.Itoa(rec.TardyCount),
			formatMinutes(rec.TardyMinutes),
			formatMinutes(rec.EarlyLeaveMinutes),
			fmt.Sprintf("%d/%d", rec.ScheduledDays, rec.AttendedDays),
			strconv.Itoa(rec.AbsenceDays),
		}
		if req.ShowDeductions() {
			total := "0.00"
			if d := deductions.lookup(rec); d != nil {
				total = formatMoney(d.TotalDeduction)
			}
			cells = append(cells, total)
		}
		w.tableRow(cols, cells, false)
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) deductionsTable(summary deduction.Summary) {
	cols := deductionTableColumns

	heading := "Deductions"
	if summary.Currency != "" {
		heading += " (" + summary.Currency + ")"
	}
	w.sectionHeading(heading)
	w.tableHeader(cols)
	for _, e := range summary.Employees {
		if !e.TotalDeduction.IsPositive() {
			continue
		}
		w.tableRow(cols, []string{
			truncate(e.Name, deductionNameWidth),
			e.DocumentID,
			strconv.Itoa(e.EffectiveTardyMinutes),
			formatMoney(e.TardyDeduction),
			strconv.Itoa(e.AbsenceDays),
			formatMoney(e.AbsenceDeduction),
			formatMoney(e.EarlyLeaveDeduction),
			formatMoney(e.TotalDeduction),
		}, false)
	}

	w.tableRow(cols, []string{
		"TOTAL", "", "",
		formatMoney(summary.TotalTardyDeduction),
		"",
		formatMoney(summary.TotalAbsenceDeduction),
		formatMoney(summary.TotalEarlyLeaveDeduction),
		formatMoney(summary.GrandTotalDeduction),
	}, true)
}

func (w *pdfWriter) sectionHeading(text string) {
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.CellFormat(0, 7, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) tableHeader(cols []pdfColumn) {
	w.pdf.SetFont("Helvetica", "B", 8)
	w.pdf.SetFillColor(220, 220, 220)
	for _, c := range cols {
		w.pdf.CellFormat(c.width, pdfRowHeight, c.header, "1", 0, "C", true, 0, "")
	}
	w.pdf.Ln(-1)
	w.pdf.SetFont("Helvetica", "", 8)
}

// tableRow starts a new page with a repeated header when the row would not
// fit above the footer.
func (w *pdfWriter) tableRow(cols []pdfColumn, cells []string, bold bool) {
	_, pageHeight := w.pdf.GetPageSize()
	if w.pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomMargin {
		w.pdf.AddPage()
		w.tableHeader(cols)
	}

	if bold {
		w.pdf.SetFont("Helvetica", "B", 8)
		defer w.pdf.SetFont("Helvetica", "", 8)
	}
	for i, c := range cols {
		w.pdf.CellFormat(c.width, pdfRowHeight, w.tr(cells[i]), "1", 0, c.align, bold, 0, "")
	}
	w.pdf.Ln(-1)
}

func money(d decimal.Decimal, currency string) string {
	if currency == "" {
		return formatMoney(d)
	}
	return currency + " " + formatMoney(d)
}
