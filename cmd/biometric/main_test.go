package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeExport(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"ID", "Nombre", "Departamento", "Normal", "Real", "Cantidad", "Minuto", "Cantidad", "Minuto", "Asistidos", "Falta"},
		{"12345678", "ANA~LOPEZ", "VTAS", "160:00", "150:30", 1, "0:15", 0, "0:00", "20/19", 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	input := filepath.Join(dir, "export.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())
	return input
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeExport(t, dir)

	roster := filepath.Join(dir, "roster.json")
	require.NoError(t, os.WriteFile(roster, []byte(`{"employees": [
		{"id": "emp-1", "full_name": "Ana María López", "document_id": "12345678", "department": "Ventas"}
	]}`), 0o600))

	opts := options{
		input:          input,
		roster:         roster,
		org:            "Acme",
		withDeductions: true,
		outputs: map[report.Format]string{
			report.FormatCSV: filepath.Join(dir, "out.csv"),
			report.FormatPDF: filepath.Join(dir, "out.pdf"),
		},
	}
	require.NoError(t, run(context.Background(), opts))

	csv, err := os.ReadFile(opts.outputs[report.FormatCSV])
	require.NoError(t, err)
	assert.Contains(t, string(csv), `"Ana María López","Ventas"`)
	// 15 tardy minutes less 10 of tolerance at 0.50.
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(csv)), ",true,2.50,0.00,0.00,2.50,2.50"), string(csv))

	pdf, err := os.ReadFile(opts.outputs[report.FormatPDF])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRun_MissingInput(t *testing.T) {
	err := run(context.Background(), options{input: filepath.Join(t.TempDir(), "nope.xlsx"), roster: "roster.json"})
	assert.Error(t, err)
}

func TestRun_CompanyScope(t *testing.T) {
	tests := []struct {
		name    string
		company string
		matched bool
	}{
		{"every entry by default", "", true},
		{"same company", "acme", true},
		{"other company", "globex", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			roster := filepath.Join(dir, "roster.json")
			require.NoError(t, os.WriteFile(roster, []byte(`{"employees": [
				{"id": "emp-1", "company_id": "acme", "full_name": "Ana María López", "document_id": "12345678"}
			]}`), 0o600))

			out := filepath.Join(dir, "out.csv")
			opts := options{
				input:   writeExport(t, dir),
				roster:  roster,
				company: tt.company,
				outputs: map[report.Format]string{report.FormatCSV: out},
			}
			require.NoError(t, run(context.Background(), opts))

			csv, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.matched, strings.Contains(string(csv), "Ana María López"), string(csv))
		})
	}
}
