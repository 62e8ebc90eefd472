package spreadsheet

import (
	"fmt"
	"strings"

	"rosterctl/internal/domain"
)

// Formula text building blocks. The argument separator follows the
// European-locale spreadsheet convention.
const (
	argSeparator = ";"
	// matchToken is the literal a tutor types into a marker cell to award
	// the criterion's points.
	matchToken = "x"
)

// hyperlink renders a linked cell.
func hyperlink(url, label string) string {
	return fmt.Sprintf(`=HYPERLINK("%s"%s "%s")`, url, argSeparator, label)
}

// sumFormula renders an aggregation over the given argument expressions.
func sumFormula(args []string) string {
	return fmt.Sprintf("=SUM(%s)", strings.Join(args, argSeparator))
}

// conditionalPoints renders one conditional-sum argument: the points cell
// value if the marker cell holds the match token, else zero.
func conditionalPoints(markerCell, pointsCell string) string {
	return fmt.Sprintf(`IF(%s="%s"%s%s%s0)`,
		markerCell, matchToken, argSeparator, pointsCell, argSeparator)
}

// gradeFormula builds the nested conditional translating a total points
// cell into a grade. Boundaries must be ordered by ascending maximum; the
// worst grade is tested first with a less-than comparison and the best
// grade is the fall-through default. Contiguity of the boundaries was
// validated at metadata parse time.
func gradeFormula(totalCell string, grades []domain.GradeBoundary) string {
	expr := fmt.Sprintf(`"%d"`, grades[len(grades)-1].Grade)
	for i := len(grades) - 2; i >= 0; i-- {
		expr = fmt.Sprintf(`IF(%s<%d%s"%d"%s%s)`,
			totalCell, grades[i].Max+1, argSeparator, grades[i].Grade, argSeparator, expr)
	}
	return "=" + expr
}

// sheetRef renders a cross-grid reference to a cell of another sheet.
func sheetRef(sheet, cell string) string {
	return fmt.Sprintf("='%s'.%s", sheet, cell)
}
