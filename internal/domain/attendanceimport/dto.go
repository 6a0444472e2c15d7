package attendanceimport

import (
	"io"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
)

var allowedExtensions = []string{".xls", ".xlsx"}

// ImportRequest is one uploaded time-clock export. CompanyID is taken from the
// caller's token when empty.
type ImportRequest struct {
	CompanyID string                   `json:"-"`
	File      io.Reader                `json:"-"`
	Filename  string                   `json:"-"`
	Policy    *deduction.PolicyRequest `json:"policy"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file is required",
		})
	}

	if validator.IsEmpty(r.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "filename",
			Message: "filename is required",
		})
	} else if !validator.HasExtension(r.Filename, allowedExtensions...) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "only xls, xlsx allowed",
		})
	}

	errs = append(errs, policyErrors(r.Policy)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportStoredRequest imports a workbook uploaded earlier.
type ImportStoredRequest struct {
	CompanyID string                   `json:"-"`
	Path      string                   `json:"path"`
	Policy    *deduction.PolicyRequest `json:"policy"`
}

func (r *ImportStoredRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Path) {
		errs = append(errs, validator.ValidationError{
			Field:   "path",
			Message: "path is required",
		})
	} else if !validator.IsValidStoredPath(r.Path) {
		errs = append(errs, validator.ValidationError{
			Field:   "path",
			Message: "path is invalid",
		})
	} else if !validator.HasExtension(r.Path, allowedExtensions...) {
		errs = append(errs, validator.ValidationError{
			Field:   "path",
			Message: "only xls, xlsx allowed",
		})
	}

	errs = append(errs, policyErrors(r.Policy)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RenderRequest imports an export and renders it. WithDeductions adds the
// deduction columns and tables.
type RenderRequest struct {
	ImportRequest
	Format         report.Format `json:"format"`
	WithDeductions bool          `json:"with_deductions"`
	Title          string        `json:"title"`
}

func (r *RenderRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.ImportRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if !validator.IsInSlice(string(r.Format), report.Formats) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: pdf, csv, xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func policyErrors(p *deduction.PolicyRequest) validator.ValidationErrors {
	if p == nil {
		return nil
	}
	if err := p.Validate(); err != nil {
		return err.(validator.ValidationErrors)
	}
	return nil
}

// ImportResult is the outcome of one import: the reconciled attendance facts
// and the deductions computed from them.
type ImportResult struct {
	Report     biometric.ParsedReport `json:"report"`
	Deductions deduction.Summary      `json:"deductions"`
	Policy     deduction.Policy       `json:"policy"`
}

type UploadResponse struct {
	Path     string `json:"path"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// StoredWorkbook is an uploaded export read back for download.
type StoredWorkbook struct {
	Filename    string
	ContentType string
	Data        []byte
}
