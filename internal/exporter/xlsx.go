package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"rosterctl/internal/errors"
	"rosterctl/internal/spreadsheet"
)

// maxSheetNameLength is the workbook format's sheet name limit.
const maxSheetNameLength = 31

// WriteWorkbook stores all grids as one XLSX workbook, one sheet per grid.
// Formula cells are translated from the CSV dialect to the workbook
// dialect before storing.
func (e *Exporter) WriteWorkbook(path string, grids []spreadsheet.Grid) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	for i, grid := range grids {
		name := sheetName(grid.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return errors.FileSystemError("renaming sheet", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.FileSystemError("adding sheet", err)
		}

		for rowIdx, row := range grid.Rows {
			for colIdx, value := range row {
				if value == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return errors.FileSystemError("addressing cell", err)
				}
				if strings.HasPrefix(value, "=") {
					err = f.SetCellFormula(name, cell, workbookFormula(value[1:]))
				} else {
					err = f.SetCellValue(name, cell, value)
				}
				if err != nil {
					return errors.FileSystemError(fmt.Sprintf("setting cell %s!%s", name, cell), err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.FileSystemError("encoding workbook", err)
	}
	return e.writeFile(path, buf.Bytes())
}

// workbookFormula translates generated formula text to the XLSX dialect:
// argument separators become commas and sheet references use the bang
// style. Separators inside quoted strings are left alone.
func workbookFormula(formula string) string {
	var b strings.Builder
	b.Grow(len(formula))

	inString := false
	inSheetName := false
	for i := 0; i < len(formula); i++ {
		c := formula[i]
		switch {
		case inString:
			b.WriteByte(c)
			if c == '"' {
				inString = false
			}
		case inSheetName:
			b.WriteByte(c)
			if c == '\'' {
				inSheetName = false
				if i+1 < len(formula) && formula[i+1] == '.' {
					b.WriteByte('!')
					i++
				}
			}
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '\'':
			inSheetName = true
			b.WriteByte(c)
		case c == ';':
			b.WriteByte(',')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// sheetName makes a grid name usable as a workbook sheet name.
func sheetName(name string) string {
	replacer := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")")
	cleaned := []rune(replacer.Replace(name))
	if len(cleaned) > maxSheetNameLength {
		cleaned = cleaned[:maxSheetNameLength]
	}
	return string(cleaned)
}
