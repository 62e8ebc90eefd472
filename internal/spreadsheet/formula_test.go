package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rosterctl/internal/domain"
)

func TestHyperlink(t *testing.T) {
	got := hyperlink("https://wiki.example.org/Main/MaxMustermann", "MaxMustermann")
	assert.Equal(t, `=HYPERLINK("https://wiki.example.org/Main/MaxMustermann"; "MaxMustermann")`, got)
}

func TestSumFormula(t *testing.T) {
	got := sumFormula([]string{"C4", "C5", "C11"})
	assert.Equal(t, "=SUM(C4;C5;C11)", got)
}

func TestConditionalPoints(t *testing.T) {
	got := conditionalPoints("C4", "$B$4")
	assert.Equal(t, `IF(C4="x";$B$4;0)`, got)
}

func TestGradeFormula(t *testing.T) {
	grades := []domain.GradeBoundary{
		{Grade: 5, Name: "insufficient", Min: 0, Max: 49},
		{Grade: 4, Name: "sufficient", Min: 50, Max: 59},
		{Grade: 3, Name: "satisfactory", Min: 60, Max: 69},
		{Grade: 2, Name: "good", Min: 70, Max: 84},
		{Grade: 1, Name: "excellent", Min: 85, Max: 100},
	}

	got := gradeFormula("P3", grades)
	want := `=IF(P3<50;"5";IF(P3<60;"4";IF(P3<70;"3";IF(P3<85;"2";"1"))))`
	assert.Equal(t, want, got)
}

func TestSheetRef(t *testing.T) {
	assert.Equal(t, "='Assignment 1'.C10", sheetRef("Assignment 1", "C10"))
}
