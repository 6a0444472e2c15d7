package workbook

import (
	"strconv"
	"strings"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
)

// Cell is a single spreadsheet value. Text always holds the value as it is
// displayed in the sheet; Number is only meaningful for CellNumber.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// NewCell classifies a raw cell value read from a sheet.
func NewCell(raw string) Cell {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Cell{Kind: CellEmpty}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return Cell{Kind: CellNumber, Text: text, Number: n}
	}
	return Cell{Kind: CellString, Text: text}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

func (c Cell) String() string {
	return c.Text
}

// Sheet is a named rectangular grid of cells.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Cell returns the cell at row/col, or an empty cell when out of range.
func (s Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}

// Width returns the number of columns of the grid.
func (s Sheet) Width() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// IsEmpty reports whether the sheet holds no non-empty cell.
func (s Sheet) IsEmpty() bool {
	for _, row := range s.Rows {
		for _, c := range row {
			if !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// newSheet builds a rectangular sheet from ragged string rows.
func newSheet(name string, raw [][]string) Sheet {
	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}

	rows := make([][]Cell, len(raw))
	for i, r := range raw {
		cells := make([]Cell, width)
		for j, v := range r {
			cells[j] = NewCell(v)
		}
		rows[i] = cells
	}

	return Sheet{Name: name, Rows: rows}
}
