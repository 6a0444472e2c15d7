package workbook

import (
	"bytes"
	"errors"
	"fmt"

	xls "github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnreadable  = errors.New("workbook is unreadable")
	ErrNoDataSheet = errors.New("no data sheet found")
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

var (
	zipMagic = []byte{'P', 'K', 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Workbook holds every sheet of a spreadsheet file in sheet order.
type Workbook struct {
	Format Format
	Sheets []Sheet
}

// Open decodes an XLSX (OOXML) or legacy XLS (BIFF) payload. The container
// is detected from the leading magic bytes, not from the file name.
func Open(data []byte) (*Workbook, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return openXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return openXLS(data)
	default:
		return nil, fmt.Errorf("%w: unrecognised file signature", ErrUnreadable)
	}
}

func openXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	wb := &Workbook{Format: FormatXLSX}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadable, name, err)
		}
		wb.Sheets = append(wb.Sheets, newSheet(name, rows))
	}

	return wb, nil
}

func openXLS(data []byte) (wb *Workbook, err error) {
	// extrame/xls panics on corrupt BIFF records, such as a cell that points
	// past the shared string table
	defer func() {
		if p := recover(); p != nil {
			wb = nil
			err = fmt.Errorf("%w: %v", ErrUnreadable, p)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if book == nil {
		return nil, fmt.Errorf("%w: no workbook stream", ErrUnreadable)
	}

	wb = &Workbook{Format: FormatXLS}
	for i := 0; i < book.NumSheets(); i++ {
		sheet := book.GetSheet(i)
		if sheet == nil {
			continue
		}

		raw := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := xlsRow(sheet, r)
			if row == nil {
				raw = append(raw, nil)
				continue
			}
			cols := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cols[c] = row.Col(c)
			}
			raw = append(raw, cols)
		}
		wb.Sheets = append(wb.Sheets, newSheet(sheet.Name, raw))
	}

	return wb, nil
}

// xlsRow returns nil for rows that hold no cells; extrame/xls dereferences
// the missing row instead.
func xlsRow(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}
