package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
)

// Fixed column positions in the overview grid. The manually filled talk
// and continuation blocks sit between the identity columns and the
// per-assignment references.
const (
	overviewFixedColumns = 13
	overviewGroupCol     = 0
	overviewMatrNrCol    = 1
)

// OverviewGrid builds the cross-assignment summary: one row per student
// with references into every assignment grid, a point total and the
// computed final grade. Students must already be filtered to the group
// and sorted by wikiname, matching the assignment grids.
func (g *Generator) OverviewGrid(students []domain.StudentRecord, group int) (Grid, error) {
	assignments := g.meta.Assignments
	totalCol := overviewFixedColumns + len(assignments) + 1
	gradeCol := totalCol + 1
	if err := checkWidth(gradeCol + 1); err != nil {
		return Grid{}, err
	}

	header := []string{
		"Group", "Matriculation number", "First name", "Last name", "Wiki name",
		"Submission talk", "", "", "",
		"Wants to continue", "", "", "",
	}
	for _, a := range assignments {
		header = append(header, a.Name)
	}
	header = append(header, "", "Total points", "Final grade")

	rows := [][]string{header, make([]string, len(header))}

	grades := g.meta.GradesByMaxAscending()
	cell := func(col, rowIdx int) string {
		id, _ := CellID(col, rowIdx)
		return id
	}

	for sID, s := range students {
		rowIdx := 2 + sID
		row := []string{
			groupsDisplay(s.Groups, group),
			strconv.Itoa(s.MatrNr),
			s.FirstName,
			s.LastName,
			hyperlink(g.meta.WikiURL+"Main/"+s.Wikiname(), s.Wikiname()),
			"", "", "", "", "", "", "", "",
		}
		for _, a := range assignments {
			scheme, ok := g.scheme.Assignment(a.Name)
			if !ok {
				return Grid{}, errors.NewWithDetails(errors.KindValidation, "SCHEME_INVALID",
					"assignment missing from grading scheme", a.Name)
			}
			// Student columns in the assignment grid start at 2, same
			// sort order as here.
			row = append(row, sheetRef(a.Name, cell(sID+2, totalRowIndex(scheme))))
		}
		first := cell(overviewFixedColumns, rowIdx)
		last := cell(overviewFixedColumns+len(assignments)-1, rowIdx)
		row = append(row,
			"",
			fmt.Sprintf("=SUM(%s:%s)", first, last),
			gradeFormula(cell(totalCol, rowIdx), grades))
		rows = append(rows, row)
	}

	return Grid{Name: OverviewName, Rows: rows}, nil
}

// groupsDisplay renders a student's group memberships for the overview.
// The placeholder group 0 is hidden unless the grid itself is for group 0.
func groupsDisplay(groups []int, gridGroup int) string {
	parts := make([]string, 0, len(groups))
	for _, gr := range groups {
		if gr == 0 && gridGroup != 0 {
			continue
		}
		parts = append(parts, strconv.Itoa(gr))
	}
	return strings.Join(parts, ", ")
}
