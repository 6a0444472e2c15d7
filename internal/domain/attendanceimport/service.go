package attendanceimport

import (
	"context"
	"io"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
)

// ImportService runs the whole pipeline for one export: read, detect, parse,
// reconcile against the company roster and compute deductions. Nothing is
// kept between calls.
type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
	ImportStored(ctx context.Context, req ImportStoredRequest) (ImportResult, error)
	Render(ctx context.Context, req RenderRequest) (report.Document, error)
	Upload(ctx context.Context, file io.Reader, filename string) (UploadResponse, error)

	// DownloadUpload and DeleteUpload only see the caller company's uploads.
	DownloadUpload(ctx context.Context, path string) (StoredWorkbook, error)
	DeleteUpload(ctx context.Context, path string) error

	DefaultPolicy() deduction.Policy
}
