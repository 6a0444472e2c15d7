package workbook

import "strings"

// SheetStrategy picks a sheet out of a workbook, or reports no match.
type SheetStrategy func(sheets []Sheet) (Sheet, bool)

// DefaultSheetStrategies is the selection order used for time-clock exports:
// a statistics sheet by name, then the second sheet, then the first.
var DefaultSheetStrategies = []SheetStrategy{
	ByName("estad", "page 2"),
	ByPosition(1),
	ByPosition(0),
}

// ByName matches the first sheet whose name contains any of the tokens,
// case-insensitively.
func ByName(tokens ...string) SheetStrategy {
	return func(sheets []Sheet) (Sheet, bool) {
		for _, s := range sheets {
			name := strings.ToLower(s.Name)
			for _, token := range tokens {
				if strings.Contains(name, token) {
					return s, true
				}
			}
		}
		return Sheet{}, false
	}
}

// ByPosition matches the sheet at the given zero-based index.
func ByPosition(index int) SheetStrategy {
	return func(sheets []Sheet) (Sheet, bool) {
		if index < 0 || index >= len(sheets) {
			return Sheet{}, false
		}
		return sheets[index], true
	}
}

// FirstMatch composes strategies; the first one that matches wins.
func FirstMatch(strategies ...SheetStrategy) SheetStrategy {
	return func(sheets []Sheet) (Sheet, bool) {
		for _, strategy := range strategies {
			if s, ok := strategy(sheets); ok {
				return s, true
			}
		}
		return Sheet{}, false
	}
}

// SelectSheet returns the data sheet of the workbook. An empty workbook or an
// empty selected sheet yields ErrNoDataSheet.
func (wb *Workbook) SelectSheet(strategies ...SheetStrategy) (Sheet, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return Sheet{}, ErrNoDataSheet
	}
	if len(strategies) == 0 {
		strategies = DefaultSheetStrategies
	}

	sheet, ok := FirstMatch(strategies...)(wb.Sheets)
	if !ok || sheet.IsEmpty() {
		return Sheet{}, ErrNoDataSheet
	}

	return sheet, nil
}
