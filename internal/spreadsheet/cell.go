package spreadsheet

import (
	"fmt"

	"rosterctl/internal/errors"
)

// maxColumns is the last addressable column ("ZZ" + 1).
const maxColumns = 676

// CellID maps zero-based (col, row) coordinates to a cell identifier like
// "A4". Columns at or beyond maxColumns are a hard error.
func CellID(col, row int) (string, error) {
	return cellID(col, row, false)
}

// AbsCellID returns the absolute-reference form with frozen column and
// row markers, like "$A$4".
func AbsCellID(col, row int) (string, error) {
	return cellID(col, row, true)
}

func cellID(col, row int, fixed bool) (string, error) {
	if col < 0 || row < 0 {
		return "", errors.NewWithDetails(errors.KindInternal, "CELL_RANGE_EXCEEDED",
			"negative cell coordinates", fmt.Sprintf("(%d,%d)", col, row))
	}
	if col >= maxColumns {
		return "", errors.NewWithDetails(errors.KindInternal, "CELL_RANGE_EXCEEDED",
			"cell addressing does not support columns beyond ZZ", col)
	}

	var letters string
	if col < 26 {
		letters = string(rune('A' + col))
	} else {
		letters = string(rune('A'+col/26-1)) + string(rune('A'+col%26))
	}

	if fixed {
		return fmt.Sprintf("$%s$%d", letters, row+1), nil
	}
	return fmt.Sprintf("%s%d", letters, row+1), nil
}
