// Command biometric runs a time-clock export through the import pipeline
// offline, reconciling against a JSON roster and writing the requested
// reports to disk.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/attendanceimport"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/storage"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/repository/jsonfile"
	importService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/attendanceimport"
	biometricService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/biometric"
	deductionService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/file"
	reportService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/report"
)

// offlineCompany identifies the import when -company is not given.
const offlineCompany = "offline"

// unscopedRoster serves every roster entry whatever company is asked for.
type unscopedRoster struct {
	biometric.RosterRepository
}

func (r unscopedRoster) GetActiveRoster(ctx context.Context, _ string) ([]biometric.RosterEntry, error) {
	return r.RosterRepository.GetActiveRoster(ctx, "")
}

type options struct {
	input          string
	roster         string
	company        string
	org            string
	title          string
	withDeductions bool
	enforceCap     bool
	currency       string
	outputs        map[report.Format]string
}

func main() {
	opts := parseFlags()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	var pdfOut, csvOut, xlsxOut string

	flag.StringVar(&opts.input, "input", "", "time-clock export (.xls or .xlsx)")
	flag.StringVar(&opts.roster, "roster", "", "JSON roster file")
	flag.StringVar(&opts.company, "company", "", "only use roster entries of this company (default: every entry)")
	flag.StringVar(&opts.org, "org", "Attendance Hub", "organization name printed on reports")
	flag.StringVar(&opts.title, "title", "", "report title")
	flag.BoolVar(&opts.withDeductions, "with-deductions", false, "include deduction columns and tables")
	flag.BoolVar(&opts.enforceCap, "enforce-cap", false, "clamp deductions to the salary cap")
	flag.StringVar(&opts.currency, "currency", "", "currency code for deduction amounts")
	flag.StringVar(&pdfOut, "pdf", "", "write a PDF report to this path")
	flag.StringVar(&csvOut, "csv", "", "write a CSV report to this path")
	flag.StringVar(&xlsxOut, "xlsx", "", "write an XLSX report to this path")
	flag.Parse()

	opts.outputs = map[report.Format]string{}
	for format, path := range map[report.Format]string{report.FormatPDF: pdfOut, report.FormatCSV: csvOut, report.FormatXLSX: xlsxOut} {
		if path != "" {
			opts.outputs[format] = path
		}
	}

	if opts.input == "" || opts.roster == "" {
		flag.Usage()
		os.Exit(2)
	}
	return opts
}

func run(ctx context.Context, opts options) error {
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	// Stored uploads are not used offline; the file service only needs a home.
	scratch, err := os.MkdirTemp("", "biometric-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)
	local, err := storage.NewLocalStorage(scratch, "file://"+scratch)
	if err != nil {
		return err
	}

	policy := deduction.DefaultPolicy()
	policy.EnforceCap = opts.enforceCap
	if opts.currency != "" {
		policy.Currency = opts.currency
	}

	var roster biometric.RosterRepository = jsonfile.NewRosterRepository(opts.roster)
	companyID := opts.company
	if companyID == "" {
		roster = unscopedRoster{roster}
		companyID = offlineCompany
	}

	svc := importService.NewImportService(
		biometricService.NewWorkbookParser(time.Now),
		roster,
		deductionService.NewDeductionService(),
		reportService.NewReportService(),
		file.NewFileService(local, 0),
		importService.Options{DefaultPolicy: policy, Organization: opts.org},
	)

	importReq := attendanceimport.ImportRequest{
		CompanyID: companyID,
		File:      bytes.NewReader(data),
		Filename:  filepath.Base(opts.input),
	}
	result, err := svc.Import(ctx, importReq)
	if err != nil {
		return err
	}
	printSummary(result)

	for format, path := range opts.outputs {
		doc, err := svc.Render(ctx, attendanceimport.RenderRequest{
			ImportRequest: attendanceimport.ImportRequest{
				CompanyID: companyID,
				File:      bytes.NewReader(data),
				Filename:  importReq.Filename,
			},
			Format:         format,
			WithDeductions: opts.withDeductions,
			Title:          opts.title,
		})
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", format, err)
		}
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(doc.Data))
	}
	return nil
}

func printSummary(result attendanceimport.ImportResult) {
	r := result.Report
	d := result.Deductions
	fmt.Printf("period:     %s\n", r.Period)
	fmt.Printf("sheet:      %s\n", r.SheetName)
	fmt.Printf("employees:  %d (%d matched, %d unmatched)\n", r.TotalEmployees, r.MatchedEmployees, r.UnmatchedEmployees)
	fmt.Printf("issues:     %d\n", len(r.Issues))
	fmt.Printf("deductions: %s %s across %d employees\n", d.Currency, d.GrandTotalDeduction.StringFixed(2), d.EmployeesWithDeductions)
	if !d.GrandTotalPayable.Equal(d.GrandTotalDeduction) {
		fmt.Printf("payable:    %s %s\n", d.Currency, d.GrandTotalPayable.StringFixed(2))
	}
}
