package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/auth"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/user"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Rejected workbooks carry their own user-facing message
	var parseErr *biometric.ParseError
	if errors.As(err, &parseErr) {
		UnprocessableEntity(w, "UNREADABLE_WORKBOOK", parseErr.Message())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company ID is required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Biometric domain errors
	case errors.Is(err, biometric.ErrRosterUnavailable):
		slog.Error("employee directory unavailable", "error", err)
		BadGateway(w, "Could not reach employee directory")
	case errors.Is(err, biometric.ErrFileTooLarge):
		PayloadTooLarge(w, "File exceeds the maximum upload size")
	case errors.Is(err, biometric.ErrInvalidFileType):
		BadRequest(w, "Invalid file type: only xls, xlsx allowed", nil)
	case errors.Is(err, biometric.ErrStoredFileMissing):
		NotFound(w, "Stored file not found")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported report format", nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("report generation failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
