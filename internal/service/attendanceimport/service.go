package attendanceimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/attendanceimport"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/user"
	biometricsvc "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/file"
)

// Options are the per-deployment settings of the import pipeline.
type Options struct {
	DefaultPolicy deduction.Policy
	MaxUploadSize int64
	Organization  string
	Now           func() time.Time
}

type ImportServiceImpl struct {
	parser      biometric.WorkbookParser
	rosterRepo  biometric.RosterRepository
	deductions  deduction.DeductionService
	reports     report.ReportService
	fileService file.FileService
	opts        Options
}

func NewImportService(
	parser biometric.WorkbookParser,
	rosterRepo biometric.RosterRepository,
	deductions deduction.DeductionService,
	reports report.ReportService,
	fileService file.FileService,
	opts Options,
) attendanceimport.ImportService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ImportServiceImpl{
		parser:      parser,
		rosterRepo:  rosterRepo,
		deductions:  deductions,
		reports:     reports,
		fileService: fileService,
		opts:        opts,
	}
}

// Import implements attendanceimport.ImportService.
func (s *ImportServiceImpl) Import(ctx context.Context, req attendanceimport.ImportRequest) (attendanceimport.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendanceimport.ImportResult{}, err
	}

	companyID, err := resolveCompanyID(ctx, req.CompanyID)
	if err != nil {
		return attendanceimport.ImportResult{}, err
	}

	data, err := file.ReadLimited(req.File, s.opts.MaxUploadSize)
	if err != nil {
		return attendanceimport.ImportResult{}, err
	}

	return s.run(ctx, companyID, req.Filename, data, req.Policy)
}

// ImportStored implements attendanceimport.ImportService.
func (s *ImportServiceImpl) ImportStored(ctx context.Context, req attendanceimport.ImportStoredRequest) (attendanceimport.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendanceimport.ImportResult{}, err
	}

	companyID, err := ownedUpload(ctx, req.CompanyID, req.Path)
	if err != nil {
		return attendanceimport.ImportResult{}, err
	}

	data, err := s.fileService.ReadWorkbook(ctx, req.Path)
	if err != nil {
		return attendanceimport.ImportResult{}, err
	}

	return s.run(ctx, companyID, req.Path, data, req.Policy)
}

// Render implements attendanceimport.ImportService.
func (s *ImportServiceImpl) Render(ctx context.Context, req attendanceimport.RenderRequest) (report.Document, error) {
	if err := req.Validate(); err != nil {
		return report.Document{}, err
	}

	result, err := s.Import(ctx, req.ImportRequest)
	if err != nil {
		return report.Document{}, err
	}

	renderReq := report.RenderRequest{
		Report:       result.Report,
		Organization: s.opts.Organization,
		Title:        req.Title,
		GeneratedAt:  s.opts.Now(),
	}
	if req.WithDeductions {
		renderReq.Deductions = &result.Deductions
	}

	doc, err := s.reports.Render(renderReq, req.Format)
	if err != nil {
		slog.Error("failed to render attendance report", "format", req.Format, "error", err)
		return report.Document{}, err
	}
	return doc, nil
}

// Upload implements attendanceimport.ImportService.
func (s *ImportServiceImpl) Upload(ctx context.Context, f io.Reader, filename string) (attendanceimport.UploadResponse, error) {
	companyID, err := resolveCompanyID(ctx, "")
	if err != nil {
		return attendanceimport.UploadResponse{}, err
	}

	storedPath, err := s.fileService.UploadWorkbook(ctx, companyID, f, filename)
	if err != nil {
		return attendanceimport.UploadResponse{}, err
	}

	url, err := s.fileService.GetFileURL(ctx, storedPath, 0)
	if err != nil {
		return attendanceimport.UploadResponse{}, fmt.Errorf("failed to get file url: %w", err)
	}

	return attendanceimport.UploadResponse{Path: storedPath, URL: url, Filename: filename}, nil
}

// DownloadUpload implements attendanceimport.ImportService.
func (s *ImportServiceImpl) DownloadUpload(ctx context.Context, uploadPath string) (attendanceimport.StoredWorkbook, error) {
	if _, err := ownedUpload(ctx, "", uploadPath); err != nil {
		return attendanceimport.StoredWorkbook{}, err
	}

	data, err := s.fileService.ReadWorkbook(ctx, uploadPath)
	if err != nil {
		return attendanceimport.StoredWorkbook{}, err
	}

	return attendanceimport.StoredWorkbook{
		Filename:    path.Base(uploadPath),
		ContentType: file.WorkbookContentType(uploadPath),
		Data:        data,
	}, nil
}

// DeleteUpload implements attendanceimport.ImportService.
func (s *ImportServiceImpl) DeleteUpload(ctx context.Context, uploadPath string) error {
	companyID, err := ownedUpload(ctx, "", uploadPath)
	if err != nil {
		return err
	}

	if err := s.fileService.DeleteWorkbook(ctx, uploadPath); err != nil {
		return err
	}

	slog.Info("biometric upload deleted", "company_id", companyID, "path", uploadPath)
	return nil
}

// DefaultPolicy implements attendanceimport.ImportService.
func (s *ImportServiceImpl) DefaultPolicy() deduction.Policy {
	return s.opts.DefaultPolicy
}

func (s *ImportServiceImpl) run(ctx context.Context, companyID, source string, data []byte, policyReq *deduction.PolicyRequest) (attendanceimport.ImportResult, error) {
	parsed, err := s.parser.Parse(data)
	if err != nil {
		slog.Warn("biometric workbook rejected", "company_id", companyID, "source", source, "error", err)
		return attendanceimport.ImportResult{}, err
	}

	// One roster fetch per import.
	entries, err := s.rosterRepo.GetActiveRoster(ctx, companyID)
	if err != nil {
		slog.Error("failed to fetch employee roster", "company_id", companyID, "error", err)
		return attendanceimport.ImportResult{}, fmt.Errorf("%w: %w", biometric.ErrRosterUnavailable, err)
	}
	roster := biometric.NewRoster(entries)

	records := biometricsvc.Reconcile(parsed.Records, roster)
	parsedReport := biometric.NewParsedReport(parsed.Period, parsed.SheetName, parsed.Schema, records, parsed.Issues)

	policy := policyReq.Apply(s.opts.DefaultPolicy)
	summary := s.deductions.Calculate(parsedReport, policy, roster.Salaries())

	slog.Info("biometric import completed",
		"company_id", companyID,
		"source", source,
		"sheet", parsedReport.SheetName,
		"layout", parsedReport.Schema.Layout,
		"period", parsedReport.Period.String(),
		"records", parsedReport.TotalEmployees,
		"matched", parsedReport.MatchedEmployees,
		"unmatched", parsedReport.UnmatchedEmployees,
		"issues", len(parsedReport.Issues),
		"grand_total_deduction", summary.GrandTotalDeduction.StringFixed(2),
	)

	return attendanceimport.ImportResult{
		Report:     parsedReport,
		Deductions: summary,
		Policy:     policy,
	}, nil
}

// ownedUpload resolves the company and checks that uploadPath sits in its
// biometric/{company}/ folder. Other companies' files look missing.
func ownedUpload(ctx context.Context, explicit, uploadPath string) (string, error) {
	companyID, err := resolveCompanyID(ctx, explicit)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(uploadPath, file.WorkbookPrefix(companyID)) {
		return "", biometric.ErrStoredFileMissing
	}
	return companyID, nil
}

// resolveCompanyID prefers an explicit company and falls back to the token.
func resolveCompanyID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyIDRequired
	}
	return companyID, nil
}
