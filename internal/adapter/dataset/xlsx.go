package dataset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tealeg/xlsx/v2"
)

func readXLSX(path, sheetName string) (table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return table{}, fmt.Errorf("xlsx: open file: %w", err)
	}

	sheet, err := pickSheet(f, sheetName)
	if err != nil {
		return table{}, err
	}

	tbl := table{xlsx: true}
	for i, r := range sheet.Rows {
		if r == nil {
			continue
		}
		cells := rowToStrings(r)
		if tbl.header == nil {
			if blank(cells) {
				continue
			}
			tbl.header = cells
			continue
		}
		if blank(cells) {
			continue
		}
		tbl.rows = append(tbl.rows, row{line: i + 1, fields: cells})
	}

	if tbl.header == nil {
		return table{}, errors.New("xlsx: sheet is empty")
	}
	return tbl, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, fmt.Errorf("xlsx: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, errors.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(r *xlsx.Row) []string {
	cells := make([]string, len(r.Cells))
	for j, cell := range r.Cells {
		cells[j] = cellText(cell)
	}
	return cells
}

// cellText returns the stored value of numeric cells, not their display
// format, so "0.00" coordinates keep full precision and "#,##0" years stay
// plain integers.
func cellText(cell *xlsx.Cell) string {
	if cell.Type() == xlsx.CellTypeNumeric {
		if v, err := cell.Float(); err == nil {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return cell.String()
}
