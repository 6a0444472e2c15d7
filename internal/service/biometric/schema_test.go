package biometric

import (
	"testing"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(rows ...[]string) [][]workbook.Cell {
	out := make([][]workbook.Cell, len(rows))
	for i, r := range rows {
		cells := make([]workbook.Cell, len(r))
		for j, v := range r {
			cells[j] = workbook.NewCell(v)
		}
		out[i] = cells
	}
	return out
}

func TestSingleRowHeader(t *testing.T) {
	rows := grid(
		[]string{"Reporte de estadísticas"},
		[]string{"ID", "Nombre", "Departamento", "Normal", "Real", "Cantidad", "Minuto", "Cantidad", "Minuto", "Asistidos", "Falta", "Permiso"},
		[]string{"12345678", "ANA~LOPEZ", "VENTAS", "160:00", "150:30", "2", "0:25", "1", "0:10", "20/19", "1", "0"},
	)

	schema, ok := SingleRowHeader(rows)
	require.True(t, ok)
	assert.Equal(t, 1, schema.HeaderRow)
	assert.Equal(t, biometric.LayoutSingleHeader, schema.Layout)

	want := map[biometric.Field]int{
		biometric.FieldDocumentID:        0,
		biometric.FieldName:              1,
		biometric.FieldDepartment:        2,
		biometric.FieldScheduledHours:    3,
		biometric.FieldActualHours:       4,
		biometric.FieldTardyCount:        5,
		biometric.FieldTardyMinutes:      6,
		biometric.FieldEarlyLeaveCount:   7,
		biometric.FieldEarlyLeaveMinutes: 8,
		biometric.FieldDaysAttended:      9,
		biometric.FieldAbsences:          10,
		biometric.FieldPermissions:       11,
	}
	for field, col := range want {
		assert.Equal(t, col, schema.Columns.Column(field), field.String())
	}

	_, ok = TwoRowHeader(rows)
	assert.False(t, ok, "a data row is not a sub-header")
}

func TestTwoRowHeader(t *testing.T) {
	rows := grid(
		[]string{"Estadísticas de asistencia", "", "2024-03-01 ~ 2024-03-31"},
		[]string{"ID", "Nombre", "Departamento", "Horario", "", "Tardanza", "", "Salida temprano", "", "Horas extra", "", "Días", "Falta", "Permiso"},
		[]string{"", "", "", "Normal", "Real", "Cantidad", "Minuto", "Cantidad", "Minuto", "Normal", "Especial", "", "", ""},
		[]string{"12345678", "ANA~LOPEZ", "VENTAS", "160:00", "150:30", "2", "0:25", "1", "0:10", "3:00", "1:00", "20/19", "1", "0"},
	)

	schema := DetectSchema(rows)
	assert.Equal(t, biometric.LayoutTwoRowHeader, schema.Layout)
	assert.Equal(t, 2, schema.HeaderRow, "data starts after the sub-header")

	cols := schema.Columns
	assert.Equal(t, 0, cols.Column(biometric.FieldDocumentID))
	assert.Equal(t, 1, cols.Column(biometric.FieldName))
	assert.Equal(t, 3, cols.Column(biometric.FieldScheduledHours))
	assert.Equal(t, 4, cols.Column(biometric.FieldActualHours))
	assert.Equal(t, 5, cols.Column(biometric.FieldTardyCount))
	assert.Equal(t, 6, cols.Column(biometric.FieldTardyMinutes))
	assert.Equal(t, 7, cols.Column(biometric.FieldEarlyLeaveCount))
	assert.Equal(t, 8, cols.Column(biometric.FieldEarlyLeaveMinutes))
	assert.Equal(t, 9, cols.Column(biometric.FieldOvertimeWeekday))
	assert.Equal(t, 10, cols.Column(biometric.FieldOvertimeHoliday))
	assert.Equal(t, 12, cols.Column(biometric.FieldAbsences))
	assert.Equal(t, 13, cols.Column(biometric.FieldPermissions))
	assert.Equal(t, -1, cols.Column(biometric.FieldEarlyLeaveDays), "group header replaced by its sub-columns")
}

func TestTwoRowHeader_EarlyLeaveDaysAfterGroup(t *testing.T) {
	rows := grid(
		[]string{"ID", "Nombre", "Tardanza", "", "Salida temprano", "", "Asistidos", "Falta", "Permiso", "Días salida temprano"},
		[]string{"", "", "Cantidad", "Minuto", "Cantidad", "Minuto", "", "", "", ""},
		[]string{"12345678", "ANA", "1", "0:15", "2", "0:20", "20/19", "0", "0", "3"},
	)

	schema, ok := TwoRowHeader(rows)
	require.True(t, ok)

	cols := schema.Columns
	assert.Equal(t, 4, cols.Column(biometric.FieldEarlyLeaveCount))
	assert.Equal(t, 5, cols.Column(biometric.FieldEarlyLeaveMinutes))
	assert.Equal(t, 9, cols.Column(biometric.FieldEarlyLeaveDays))

	records, issues := ParseRows(workbook.Sheet{Name: "Sheet1", Rows: rows}, schema)
	require.Len(t, records, 1)
	assert.Empty(t, issues)
	assert.Equal(t, 2, records[0].EarlyLeaveCount)
	assert.Equal(t, 20, records[0].EarlyLeaveMinutes)
	assert.Equal(t, 3, records[0].EarlyLeaveDays)
}

func TestSingleRowHeader_IdentifierWording(t *testing.T) {
	tests := []struct {
		header string
		ok     bool
	}{
		{"ID", true},
		{"User ID", true},
		{"No. ID", true},
		{"Emp ID", true},
		{"ID.", true},
		{"Identificación", true},
		{"Asistidos", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			schema, ok := SingleRowHeader(grid([]string{tt.header, "Nombre"}))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, 0, schema.Columns.Column(biometric.FieldDocumentID))
			}
		})
	}
}

func TestDetectSchema_PositionalFallback(t *testing.T) {
	rows := grid(
		[]string{"12345678", "ANA", "VENTAS"},
		[]string{"87654321", "LUIS", "RRHH"},
	)

	schema := DetectSchema(rows)
	assert.Equal(t, biometric.LayoutPositional, schema.Layout)
	assert.Equal(t, -1, schema.HeaderRow)
	assert.Equal(t, 0, schema.Columns.Column(biometric.FieldDocumentID))
	assert.Equal(t, 14, schema.Columns.Column(biometric.FieldEarlyLeaveDays))

	schema.Columns[biometric.FieldName] = 99
	again := DetectSchema(rows)
	assert.Equal(t, 1, again.Columns.Column(biometric.FieldName), "fallback layout is not shared between imports")
}

func TestDetectSchema_HeaderBeyondScanWindow(t *testing.T) {
	var raw [][]string
	for i := 0; i < headerScanRows; i++ {
		raw = append(raw, []string{"-"})
	}
	raw = append(raw, []string{"ID", "Nombre"})

	schema := DetectSchema(grid(raw...))
	assert.Equal(t, biometric.LayoutPositional, schema.Layout)
}

func TestDetectSchema_CustomChain(t *testing.T) {
	never := func([][]workbook.Cell) (biometric.Schema, bool) { return biometric.Schema{}, false }
	schema := DetectSchema(grid([]string{"ID", "Nombre"}), never)
	assert.Equal(t, biometric.LayoutPositional, schema.Layout)
}

func TestExtractPeriod(t *testing.T) {
	now := time.Date(2024, time.February, 17, 9, 0, 0, 0, time.UTC)

	period := ExtractPeriod(grid(
		[]string{"Reporte"},
		[]string{"", "Periodo: 2024-01-01 ~ 2024-01-31"},
	), now)
	assert.Equal(t, "2024-01-01 ~ 2024-01-31", period.String())

	period = ExtractPeriod(grid([]string{"2024-01-31-2024-01-01"}), now)
	assert.Equal(t, "2024-01-01 ~ 2024-01-31", period.String(), "reversed ranges are swapped")

	period = ExtractPeriod(grid([]string{"sin fecha"}), now)
	assert.Equal(t, "2024-02-01 ~ 2024-02-29", period.String())

	var raw [][]string
	for i := 0; i < periodScanRows; i++ {
		raw = append(raw, []string{"x"})
	}
	raw = append(raw, []string{"2023-05-01 ~ 2023-05-31"})
	period = ExtractPeriod(grid(raw...), now)
	assert.Equal(t, "2024-02-01 ~ 2024-02-29", period.String(), "only the first rows are scanned")
}
