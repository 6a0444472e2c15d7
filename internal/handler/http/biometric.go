package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/attendanceimport"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of a form is buffered in memory before
// spilling to temp files.
const multipartMemory = 10 << 20

type BiometricHandler interface {
	// Import parses an uploaded export and returns the attendance report
	// with its deductions.
	Import(w http.ResponseWriter, r *http.Request)

	// Upload stores an export for a later ImportStored.
	Upload(w http.ResponseWriter, r *http.Request)

	// DownloadUpload serves a stored export; DeleteUpload removes it.
	DownloadUpload(w http.ResponseWriter, r *http.Request)
	DeleteUpload(w http.ResponseWriter, r *http.Request)

	ImportStored(w http.ResponseWriter, r *http.Request)

	// Export parses an uploaded export and downloads it as pdf, csv or xlsx.
	Export(w http.ResponseWriter, r *http.Request)

	GetPolicy(w http.ResponseWriter, r *http.Request)
}

type biometricHandlerImpl struct {
	importService attendanceimport.ImportService
	maxUploadSize int64
}

func NewBiometricHandler(importService attendanceimport.ImportService, maxUploadSize int64) BiometricHandler {
	return &biometricHandlerImpl{
		importService: importService,
		maxUploadSize: maxUploadSize,
	}
}

// Import handles POST /biometric/imports
func (h *biometricHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	policy, ok := policyFromForm(w, r)
	if !ok {
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	req := attendanceimport.ImportRequest{Policy: policy}
	if file != nil {
		defer file.Close()
		req.File = file
		req.Filename = fileHeader.Filename
	}

	result, err := h.importService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upload handles POST /biometric/uploads
func (h *biometricHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Field 'file' is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	uploaded, err := h.importService.Upload(r.Context(), file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded successfully", uploaded)
}

// DownloadUpload handles GET /biometric/uploads/*
func (h *biometricHandlerImpl) DownloadUpload(w http.ResponseWriter, r *http.Request) {
	stored, err := h.importService.DownloadUpload(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, stored.Filename, stored.ContentType, stored.Data)
}

// DeleteUpload handles DELETE /biometric/uploads/*
func (h *biometricHandlerImpl) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := h.importService.DeleteUpload(r.Context(), chi.URLParam(r, "*")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted successfully", nil)
}

// ImportStored handles POST /biometric/imports/stored
func (h *biometricHandlerImpl) ImportStored(w http.ResponseWriter, r *http.Request) {
	var req attendanceimport.ImportStoredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.importService.ImportStored(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles POST /biometric/imports/{format}
func (h *biometricHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	policy, ok := policyFromForm(w, r)
	if !ok {
		return
	}

	req := attendanceimport.RenderRequest{
		ImportRequest: attendanceimport.ImportRequest{Policy: policy},
		Format:        report.Format(chi.URLParam(r, "format")),
		Title:         r.FormValue("title"),
	}

	if v := r.FormValue("with_deductions"); v != "" {
		withDeductions, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "Invalid with_deductions value", nil)
			return
		}
		req.WithDeductions = withDeductions
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
		req.File = file
		req.Filename = fileHeader.Filename
	}

	doc, err := h.importService.Render(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, doc.Filename, doc.ContentType, doc.Data)
}

// GetPolicy handles GET /biometric/policy
func (h *biometricHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.importService.DefaultPolicy())
}

// parseForm bounds the request body and parses the multipart form. It writes
// the error response itself and reports whether the handler may continue.
func (h *biometricHandlerImpl) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if h.maxUploadSize > 0 {
		// Leave room for the multipart envelope and the other fields.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartMemory)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.PayloadTooLarge(w, "File exceeds the maximum upload size")
			return false
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return false
	}
	return true
}

// policyFromForm decodes the optional "policy" JSON field.
func policyFromForm(w http.ResponseWriter, r *http.Request) (*deduction.PolicyRequest, bool) {
	policyJSON := r.FormValue("policy")
	if policyJSON == "" {
		return nil, true
	}

	var policy deduction.PolicyRequest
	if err := json.Unmarshal([]byte(policyJSON), &policy); err != nil {
		slog.Error("Failed to unmarshal policy", "error", err)
		response.BadRequest(w, "Invalid policy format", nil)
		return nil, false
	}
	return &policy, true
}
