package biometric

import (
	"maps"
	"regexp"
	"strings"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/workbook"
)

const headerScanRows = 10

var identifierWord = regexp.MustCompile(`\bid\b`)

// SchemaStrategy inspects the top of a grid and either returns a schema or
// reports no match.
type SchemaStrategy func(rows [][]workbook.Cell) (biometric.Schema, bool)

// DefaultSchemaStrategies is tried in order; PositionalDefault always matches.
var DefaultSchemaStrategies = []SchemaStrategy{
	TwoRowHeader,
	SingleRowHeader,
	PositionalDefault,
}

// positionalColumns is the column layout of the stock terminal export. It is
// only used when no header can be recognised, so results are best effort.
var positionalColumns = biometric.ColumnMap{
	biometric.FieldDocumentID:        0,
	biometric.FieldName:              1,
	biometric.FieldDepartment:        2,
	biometric.FieldScheduledHours:    3,
	biometric.FieldActualHours:       4,
	biometric.FieldTardyCount:        5,
	biometric.FieldTardyMinutes:      6,
	biometric.FieldEarlyLeaveCount:   7,
	biometric.FieldEarlyLeaveMinutes: 8,
	biometric.FieldOvertimeWeekday:   9,
	biometric.FieldOvertimeHoliday:   10,
	biometric.FieldDaysAttended:      11,
	biometric.FieldAbsences:          12,
	biometric.FieldPermissions:       13,
	biometric.FieldEarlyLeaveDays:    14,
}

// DetectSchema runs the strategies in order and returns the first match,
// falling back to the positional layout.
func DetectSchema(rows [][]workbook.Cell, strategies ...SchemaStrategy) biometric.Schema {
	if len(strategies) == 0 {
		strategies = DefaultSchemaStrategies
	}
	if schema, ok := firstSchema(strategies...)(rows); ok {
		return schema
	}
	schema, _ := PositionalDefault(rows)
	return schema
}

func firstSchema(strategies ...SchemaStrategy) SchemaStrategy {
	return func(rows [][]workbook.Cell) (biometric.Schema, bool) {
		for _, strategy := range strategies {
			if schema, ok := strategy(rows); ok {
				return schema, true
			}
		}
		return biometric.Schema{}, false
	}
}

// TwoRowHeader matches a header row followed by a sub-header row
// ("normal", "real", "cantidad", "minuto"). Sub-header cells take precedence
// over the header cell above them.
func TwoRowHeader(rows [][]workbook.Cell) (biometric.Schema, bool) {
	h, ok := findHeaderRow(rows)
	if !ok || h+1 >= len(rows) || !isSubHeader(rows[h+1]) {
		return biometric.Schema{}, false
	}

	header := newColumnAssigner()
	for col, c := range rows[h] {
		if groupHasSubHeader(rows[h], rows[h+1], col) {
			continue
		}
		header.assignHeader(col, normalizeHeader(c.Text))
	}

	sub := newColumnAssigner()
	for col, c := range rows[h+1] {
		text := normalizeHeader(c.Text)
		if text == "" {
			continue
		}
		sub.assignSubHeader(col, text, groupAt(rows[h], col))
	}

	columns := header.cols
	for field, col := range sub.cols {
		for f, c := range columns {
			if c == col {
				delete(columns, f)
			}
		}
		columns[field] = col
	}

	if !hasIdentity(columns) {
		return biometric.Schema{}, false
	}

	return biometric.Schema{HeaderRow: h + 1, Columns: columns, Layout: biometric.LayoutTwoRowHeader}, true
}

// SingleRowHeader matches a single header row; repeated "cantidad"/"minuto"
// columns are assigned in order (tardiness, early leave, overtime).
func SingleRowHeader(rows [][]workbook.Cell) (biometric.Schema, bool) {
	h, ok := findHeaderRow(rows)
	if !ok {
		return biometric.Schema{}, false
	}

	a := newColumnAssigner()
	for col, c := range rows[h] {
		text := normalizeHeader(c.Text)
		if text == "" {
			continue
		}
		if isSubHeaderToken(text) {
			a.assignSubHeader(col, text, "")
			continue
		}
		a.assignHeader(col, text)
	}

	if !hasIdentity(a.cols) {
		return biometric.Schema{}, false
	}

	return biometric.Schema{HeaderRow: h, Columns: a.cols, Layout: biometric.LayoutSingleHeader}, true
}

// PositionalDefault assumes the stock column layout with no header row.
func PositionalDefault(_ [][]workbook.Cell) (biometric.Schema, bool) {
	return biometric.Schema{
		HeaderRow: -1,
		Columns:   maps.Clone(positionalColumns),
		Layout:    biometric.LayoutPositional,
	}, true
}

// findHeaderRow returns the first row within the scan window whose text holds
// both an identifier and a name token.
func findHeaderRow(rows [][]workbook.Cell) (int, bool) {
	limit := min(headerScanRows, len(rows))
	for i := 0; i < limit; i++ {
		text := rowText(rows[i])
		if strings.Contains(text, "id") && containsAny(text, "nombre", "name") {
			return i, true
		}
	}
	return -1, false
}

func isSubHeader(row []workbook.Cell) bool {
	hits := 0
	for _, c := range row {
		if isSubHeaderToken(normalizeHeader(c.Text)) {
			hits++
		}
	}
	return hits >= 2
}

func isSubHeaderToken(text string) bool {
	for _, token := range []string{"normal", "real", "cantidad", "minuto"} {
		if strings.HasPrefix(text, token) {
			return true
		}
	}
	return false
}

// groupAt returns the nearest non-empty header text at or left of col, which
// is where merged group headers keep their value.
func groupAt(header []workbook.Cell, col int) string {
	for c := min(col, len(header)-1); c >= 0; c-- {
		if text := normalizeHeader(header[c].Text); text != "" {
			return text
		}
	}
	return ""
}

// groupHasSubHeader reports whether any sub-header token sits under the
// header cell at col or the blank cells merged to its right. Such cells are
// group labels and must not claim a field of their own.
func groupHasSubHeader(header, sub []workbook.Cell, col int) bool {
	for c := col; c < len(sub); c++ {
		if c > col && c < len(header) && normalizeHeader(header[c].Text) != "" {
			break
		}
		if isSubHeaderToken(normalizeHeader(sub[c].Text)) {
			return true
		}
	}
	return false
}

func hasIdentity(cols biometric.ColumnMap) bool {
	_, id := cols[biometric.FieldDocumentID]
	_, name := cols[biometric.FieldName]
	return id && name
}

type columnAssigner struct {
	cols biometric.ColumnMap
}

func newColumnAssigner() *columnAssigner {
	return &columnAssigner{cols: biometric.ColumnMap{}}
}

// assign gives col to the first field of the list that is still free.
func (a *columnAssigner) assign(col int, fields ...biometric.Field) {
	for _, f := range fields {
		if _, taken := a.cols[f]; !taken {
			a.cols[f] = col
			return
		}
	}
}

func (a *columnAssigner) assignHeader(col int, text string) {
	switch {
	case text == "":
	case isIdentifierHeader(text):
		a.assign(col, biometric.FieldDocumentID)
	case containsAny(text, "nombre", "name"):
		a.assign(col, biometric.FieldName)
	case containsAny(text, "depart", "depto"):
		a.assign(col, biometric.FieldDepartment)
	case containsAny(text, "asist", "attend"):
		a.assign(col, biometric.FieldDaysAttended)
	case containsAny(text, "falta", "ausen", "absen"):
		a.assign(col, biometric.FieldAbsences)
	case containsAny(text, "permis"):
		a.assign(col, biometric.FieldPermissions)
	case containsAny(text, "salida", "temprano", "early"):
		a.assign(col, biometric.FieldEarlyLeaveDays)
	case containsAny(text, "tard", "retard", "late"):
		if containsAny(text, "min") {
			a.assign(col, biometric.FieldTardyMinutes)
		} else {
			a.assign(col, biometric.FieldTardyCount)
		}
	case containsAny(text, "programad", "horario", "scheduled"):
		a.assign(col, biometric.FieldScheduledHours)
	case containsAny(text, "trabajad", "actual"):
		a.assign(col, biometric.FieldActualHours)
	case containsAny(text, "extra", "overtime", "sobretiempo"):
		if containsAny(text, "feriado", "festivo", "holiday", "especial") {
			a.assign(col, biometric.FieldOvertimeHoliday)
		} else {
			a.assign(col, biometric.FieldOvertimeWeekday, biometric.FieldOvertimeHoliday)
		}
	}
}

// assignSubHeader maps a sub-header cell using its own text plus the text of
// the group header above it as a hint.
func (a *columnAssigner) assignSubHeader(col int, text, group string) {
	hint := text + " " + group
	tardy := containsAny(hint, "tard", "retard", "late")
	early := containsAny(hint, "salida", "temprano", "early")
	overtime := containsAny(hint, "extra", "overtime", "sobretiempo")
	holiday := containsAny(hint, "feriado", "festivo", "holiday", "especial")

	switch {
	case strings.HasPrefix(text, "cantidad"):
		switch {
		case tardy:
			a.assign(col, biometric.FieldTardyCount)
		case early:
			a.assign(col, biometric.FieldEarlyLeaveCount)
		default:
			a.assign(col, biometric.FieldTardyCount, biometric.FieldEarlyLeaveCount)
		}
	case strings.HasPrefix(text, "minuto"):
		switch {
		case tardy:
			a.assign(col, biometric.FieldTardyMinutes)
		case early:
			a.assign(col, biometric.FieldEarlyLeaveMinutes)
		case overtime && holiday:
			a.assign(col, biometric.FieldOvertimeHoliday)
		case overtime:
			a.assign(col, biometric.FieldOvertimeWeekday, biometric.FieldOvertimeHoliday)
		default:
			a.assign(col,
				biometric.FieldTardyMinutes,
				biometric.FieldEarlyLeaveMinutes,
				biometric.FieldOvertimeWeekday,
				biometric.FieldOvertimeHoliday,
			)
		}
	case strings.HasPrefix(text, "normal"):
		if overtime {
			a.assign(col, biometric.FieldOvertimeWeekday)
		} else {
			a.assign(col, biometric.FieldScheduledHours)
		}
	case strings.HasPrefix(text, "real"):
		a.assign(col, biometric.FieldActualHours)
	case overtime && holiday:
		a.assign(col, biometric.FieldOvertimeHoliday)
	}
}

func isIdentifierHeader(text string) bool {
	if identifierWord.MatchString(text) {
		return true
	}
	return containsAny(text, "identific", "cédula", "cedula", "documento", "dni")
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rowText(row []workbook.Cell) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if !c.IsEmpty() {
			parts = append(parts, c.Text)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
