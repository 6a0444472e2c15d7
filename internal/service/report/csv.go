package report

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/shopspring/decimal"
)

// RenderCSV writes one header row and one row per record. Text fields are
// always quoted since names and departments come straight from the export.
func (s *ReportServiceImpl) RenderCSV(req report.RenderRequest) (report.Document, error) {
	if err := req.Validate(); err != nil {
		return report.Document{}, err
	}

	cols := columnsFor(req.ShowDeductions())
	deductions := newDeductionIndex(req.Deductions)

	var buf bytes.Buffer
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = quoteField(c.header)
	}
	writeLine(&buf, headers)

	fields := make([]string, len(cols))
	for _, rec := range req.Report.Records {
		d := deductions.lookup(rec)
		for i, c := range cols {
			fields[i] = csvField(c.value(rec, d))
		}
		writeLine(&buf, fields)
	}

	return report.Document{
		Filename:    filename(req.Report, report.FormatCSV),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func writeLine(buf *bytes.Buffer, fields []string) {
	buf.WriteString(strings.Join(fields, ","))
	buf.WriteString("\r\n")
}

func csvField(v any) string {
	switch v := v.(type) {
	case string:
		return quoteField(v)
	case int:
		return strconv.Itoa(v)
	case decimal.Decimal:
		return formatMoney(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
