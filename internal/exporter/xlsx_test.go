package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rosterctl/internal/spreadsheet"
)

func TestWorkbookFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{
			name:    "argument separators",
			formula: `SUM(IF(C4="x";$B$4;0);C11;C12)`,
			want:    `SUM(IF(C4="x",$B$4,0),C11,C12)`,
		},
		{
			name:    "separator inside string literal",
			formula: `HYPERLINK("https://wiki.example.org/a;b"; "label")`,
			want:    `HYPERLINK("https://wiki.example.org/a;b", "label")`,
		},
		{
			name:    "sheet reference",
			formula: "'Assignment 1'.C10",
			want:    "'Assignment 1'!C10",
		},
		{
			name:    "plain reference untouched",
			formula: "SUM(N3:N3)",
			want:    "SUM(N3:N3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workbookFormula(tt.formula))
		})
	}
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Assignment 1", sheetName("Assignment 1"))
	assert.Equal(t, "a-b(c)", sheetName("a/b[c]"))
	long := sheetName("abcdefghijklmnopqrstuvwxyzabcdefghijklmnop")
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyzabcde", long)
}

func TestWriteWorkbook(t *testing.T) {
	e, dir := testExporter(t)
	path := filepath.Join(dir, "book.xlsx")
	grids := []spreadsheet.Grid{
		{Name: "Assignment 1", Rows: [][]string{
			{"Total", "", `=SUM(C4;C5)`},
		}},
		{Name: "overview", Rows: [][]string{
			{"Group", "Matriculation number"},
		}},
	}

	require.NoError(t, e.WriteWorkbook(path, grids))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Assignment 1", "overview"}, f.GetSheetList())

	formula, err := f.GetCellFormula("Assignment 1", "C1")
	require.NoError(t, err)
	assert.Equal(t, "SUM(C4,C5)", formula)

	value, err := f.GetCellValue("overview", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Group", value)
}
