package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterctl/internal/errors"
)

func TestCellID(t *testing.T) {
	tests := []struct {
		name string
		col  int
		row  int
		want string
	}{
		{name: "origin", col: 0, row: 0, want: "A1"},
		{name: "second column", col: 1, row: 0, want: "B1"},
		{name: "row offset", col: 2, row: 6, want: "C7"},
		{name: "last single letter", col: 25, row: 0, want: "Z1"},
		{name: "first double letter", col: 26, row: 0, want: "AA1"},
		{name: "double letter with remainder", col: 27, row: 3, want: "AB4"},
		{name: "second letter block", col: 52, row: 0, want: "BA1"},
		{name: "last column", col: 675, row: 9, want: "ZZ10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellID(tt.col, tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellID_BeyondRange(t *testing.T) {
	_, err := CellID(676, 0)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CELL_RANGE_EXCEEDED", appErr.Code)
}

func TestCellID_NegativeCoordinates(t *testing.T) {
	_, err := CellID(-1, 0)
	assert.Error(t, err)

	_, err = CellID(0, -1)
	assert.Error(t, err)
}

func TestAbsCellID(t *testing.T) {
	got, err := AbsCellID(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "$B$4", got)

	got, err = AbsCellID(26, 0)
	require.NoError(t, err)
	assert.Equal(t, "$AA$1", got)
}
