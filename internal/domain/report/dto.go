package report

import (
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var Formats = []string{string(FormatPDF), string(FormatCSV), string(FormatXLSX)}

// RenderRequest carries everything a renderer prints. Deductions is optional;
// without it the documents show attendance only.
type RenderRequest struct {
	Report       biometric.ParsedReport
	Deductions   *deduction.Summary
	Organization string
	Title        string
	GeneratedAt  time.Time
}

func (r *RenderRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Organization) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization",
			Message: "organization is required",
		})
	}

	if r.GeneratedAt.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "generated_at",
			Message: "generated_at is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ShowDeductions reports whether deduction columns are rendered.
func (r *RenderRequest) ShowDeductions() bool {
	return r.Deductions != nil
}

// Document is a rendered report ready to be written or downloaded.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int
}
