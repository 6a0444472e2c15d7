package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
	deductionsvc "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/deduction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var generatedAt = time.Date(2024, time.February, 5, 8, 30, 0, 0, time.UTC)

func sampleReport(extra ...biometric.AttendanceRecord) biometric.ParsedReport {
	id := "emp-1"
	records := []biometric.AttendanceRecord{
		{
			EmployeeID: &id, Matched: true, RowNumber: 3,
			DocumentID: "12345678", Name: `Pérez, "Juanito" Alberto de la Cruz`, Department: "Operaciones Norte",
			ScheduledMinutes: 9600, ActualMinutes: 9030, TardyCount: 2, TardyMinutes: 35,
			ScheduledDays: 20, AttendedDays: 19, AbsenceDays: 1,
		},
		{
			RowNumber: 4, DocumentID: "87654321", Name: "LUIS GOMEZ", Department: "RRHH",
			ScheduledDays: 20, AttendedDays: 20,
		},
	}
	records = append(records, extra...)
	period := biometric.ReportingPeriod{
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	return biometric.NewParsedReport(period, "Estadisticas", biometric.Schema{}, records, nil)
}

func sampleRequest(withDeductions bool) report.RenderRequest {
	r := sampleReport()
	req := report.RenderRequest{Report: r, Organization: "Acme S.A.", GeneratedAt: generatedAt}
	if withDeductions {
		summary := deductionsvc.NewDeductionService().Calculate(r, deduction.DefaultPolicy(), nil)
		req.Deductions = &summary
	}
	return req
}

func TestRenderCSV(t *testing.T) {
	doc, err := NewReportService().RenderCSV(sampleRequest(false))
	require.NoError(t, err)

	assert.Equal(t, "attendance_20240101_20240131.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)

	lines := strings.Split(strings.TrimSuffix(string(doc.Data), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `"Document ID","Name","Department","Scheduled Minutes"`))
	assert.Equal(t,
		`"12345678","Pérez, ""Juanito"" Alberto de la Cruz","Operaciones Norte",9600,9030,2,35,0,0,0,0,20,19,1,0,true`,
		lines[1])
	assert.Equal(t, `"87654321","LUIS GOMEZ","RRHH",0,0,0,0,0,0,0,0,20,20,0,0,false`, lines[2])
}

func TestRenderCSV_WithDeductions(t *testing.T) {
	doc, err := NewReportService().RenderCSV(sampleRequest(true))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(doc.Data), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], `"Total Deduction","Payable Deduction"`))
	// 35 - 2*10 = 15 minutes at 0.50 plus one absence at 100.
	assert.True(t, strings.HasSuffix(lines[1], ",7.50,100.00,0.00,107.50,107.50"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",0.00,0.00,0.00,0.00,0.00"), lines[2])
}

func TestRenderCSV_Empty(t *testing.T) {
	req := sampleRequest(false)
	req.Report = biometric.NewParsedReport(req.Report.Period, "", biometric.Schema{}, nil, nil)

	doc, err := NewReportService().RenderCSV(req)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(doc.Data), "\r\n"), "header only")
}

func TestRenderPDF(t *testing.T) {
	svc := NewReportService()

	doc, err := svc.RenderPDF(sampleRequest(true))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "attendance_20240101_20240131.pdf", doc.Filename)
	assert.Equal(t, 1, doc.Pages)

	var many []biometric.AttendanceRecord
	for i := 0; i < 150; i++ {
		many = append(many, biometric.AttendanceRecord{
			RowNumber:  i + 10,
			DocumentID: fmt.Sprintf("9%07d", i),
			Name:       "EMPLEADO CON UN NOMBRE MUY LARGO PARA LA COLUMNA",
			TardyCount: 1, TardyMinutes: 30,
		})
	}
	req := report.RenderRequest{Report: sampleReport(many...), Organization: "Acme", GeneratedAt: generatedAt}
	summary := deductionsvc.NewDeductionService().Calculate(req.Report, deduction.DefaultPolicy(), nil)
	req.Deductions = &summary

	doc, err = svc.RenderPDF(req)
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 2, "detail and deductions tables span several pages")
}

func TestRenderPDF_WithoutDeductions(t *testing.T) {
	doc, err := NewReportService().RenderPDF(sampleRequest(false))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF-")))
	assert.Equal(t, 1, doc.Pages)
}

func TestRenderXLSX(t *testing.T) {
	doc, err := NewReportService().RenderXLSX(sampleRequest(true))
	require.NoError(t, err)
	assert.Equal(t, "attendance_20240101_20240131.xlsx", doc.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance", "Deductions"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Document ID", rows[0][0])
	assert.Equal(t, `Pérez, "Juanito" Alberto de la Cruz`, rows[1][1])
	assert.Equal(t, "9600", rows[1][3])

	rows, err = f.GetRows("Deductions")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header, two employees, totals")
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "107.5", rows[3][8])
}

func TestRenderXLSX_AttendanceOnly(t *testing.T) {
	doc, err := NewReportService().RenderXLSX(sampleRequest(false))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())
}

func TestRender(t *testing.T) {
	svc := NewReportService()

	for _, format := range []report.Format{report.FormatPDF, report.FormatCSV, report.FormatXLSX} {
		doc, err := svc.Render(sampleRequest(false), format)
		require.NoError(t, err, format)
		assert.True(t, strings.HasSuffix(doc.Filename, "."+string(format)))
		assert.NotEmpty(t, doc.Data)
	}

	_, err := svc.Render(sampleRequest(false), "docx")
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)

	req := sampleRequest(false)
	req.Organization = " "
	_, err = svc.Render(req, report.FormatCSV)
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "organization")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "63:33", formatMinutes(3813))
	assert.Equal(t, "0:05", formatMinutes(5))
	assert.Equal(t, "Pérez, \"Juanito\" Alber", truncate(`Pérez, "Juanito" Alberto de la Cruz`, 22))
	assert.Equal(t, "RRHH", truncate("RRHH", 10))
	assert.Equal(t, `"a ""b"" c"`, quoteField(`a "b" c`))
}
