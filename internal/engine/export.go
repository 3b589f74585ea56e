package engine

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes t as a single-sheet workbook. Numeric cells are written as numbers.
func WriteXLSX(t *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "name sheet")
	}

	header := t.Columns()
	row := make([]any, len(header))
	for j, h := range header {
		row[j] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return errors.Wrap(err, "write header")
	}

	cols := make([]*Column, len(header))
	for j, h := range header {
		cols[j], _ = t.Column(h)
	}
	for i := 0; i < t.Len(); i++ {
		row := make([]any, len(cols))
		for j, c := range cols {
			switch {
			case c.Missing(i):
				row[j] = nil
			case !math.IsNaN(c.Values[i]):
				row[j] = c.Values[i]
			default:
				row[j] = c.Text(i)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	return f.Write(w)
}
