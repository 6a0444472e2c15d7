package report

import "errors"

var (
	ErrUnsupportedFormat      = errors.New("unsupported report format: only pdf, csv, xlsx allowed")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
