package report

import (
	"fmt"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
)

const defaultTitle = "Biometric Attendance Report"

type ReportServiceImpl struct{}

func NewReportService() report.ReportService {
	return &ReportServiceImpl{}
}

// Render implements report.ReportService.
func (s *ReportServiceImpl) Render(req report.RenderRequest, format report.Format) (report.Document, error) {
	switch format {
	case report.FormatPDF:
		return s.RenderPDF(req)
	case report.FormatCSV:
		return s.RenderCSV(req)
	case report.FormatXLSX:
		return s.RenderXLSX(req)
	default:
		return report.Document{}, report.ErrUnsupportedFormat
	}
}

func filename(r biometric.ParsedReport, format report.Format) string {
	return fmt.Sprintf("attendance_%s_%s.%s",
		r.Period.Start.Format("20060102"),
		r.Period.End.Format("20060102"),
		format,
	)
}

func title(req report.RenderRequest) string {
	if req.Title != "" {
		return req.Title
	}
	return defaultTitle
}
