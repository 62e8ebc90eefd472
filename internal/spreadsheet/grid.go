package spreadsheet

import (
	"fmt"
	"log/slog"
	"strconv"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
	"rosterctl/internal/roster"
)

// Row labels of the generated administrative rows.
const (
	labelMatrNr   = "Matriculation number"
	labelTotal    = "Total"
	labelDeadline = "Deadline missed"
	labelBonus    = "Bonus points"
	labelSplit    = "[ split ]"
	// OverviewName names the cross-assignment grid and its output file.
	OverviewName = "overview"
)

// Grid is one generated sheet: literal values and formula text.
type Grid struct {
	Name string
	Rows [][]string
}

// Generator builds grading grids from course metadata and the grading
// scheme. Both are treated as immutable.
type Generator struct {
	meta   domain.CourseMeta
	scheme domain.GradingScheme
}

// NewGenerator creates a generator for one course.
func NewGenerator(meta domain.CourseMeta, scheme domain.GradingScheme) *Generator {
	return &Generator{meta: meta, scheme: scheme}
}

// GenerateAll filters the roster to one group, sorts it by wikiname and
// builds one grid per assignment plus the overview grid (last element).
func (g *Generator) GenerateAll(r roster.Roster, group int) ([]Grid, error) {
	filtered, err := roster.Filter(r, roster.InGroup(group))
	if err != nil {
		return nil, err
	}
	students := filtered.SortedByWikiname()

	slog.Info("Generating spreadsheets",
		slog.Int("group", group),
		slog.Int("students", len(students)),
		slog.Int("assignments", len(g.meta.Assignments)))

	grids := make([]Grid, 0, len(g.meta.Assignments)+1)
	for _, assignment := range g.meta.Assignments {
		grid, err := g.AssignmentGrid(students, assignment, group)
		if err != nil {
			return nil, fmt.Errorf("assignment %q: %w", assignment.Name, err)
		}
		grids = append(grids, grid)
	}

	overview, err := g.OverviewGrid(students, group)
	if err != nil {
		return nil, err
	}
	return append(grids, overview), nil
}

// AssignmentGrid builds the grading grid for one assignment. Students must
// already be filtered to the group and sorted by wikiname.
func (g *Generator) AssignmentGrid(students []domain.StudentRecord, assignment domain.AssignmentMeta, group int) (Grid, error) {
	scheme, ok := g.scheme.Assignment(assignment.Name)
	if !ok {
		return Grid{}, errors.NewWithDetails(errors.KindValidation, "SCHEME_INVALID",
			"assignment missing from grading scheme", assignment.Name)
	}

	width := 2 + len(students)
	if err := checkWidth(width); err != nil {
		return Grid{}, err
	}

	var rows [][]string

	// Title row: one cell per student linking their submission location,
	// or the partner submission location when one is configured.
	title := fmt.Sprintf("%s, Group %d, %d", assignment.Name, group, assignment.Deadline.Year())
	row := []string{title, ""}
	for _, s := range students {
		if assignment.PartnerSubmission != "" {
			url := g.meta.WikiURL + "Main/" + s.Wikiname() + assignment.PartnerSubmission
			row = append(row, hyperlink(url, strconv.Itoa(s.MatrNr)))
		} else {
			row = append(row, strconv.Itoa(s.MatrNr))
		}
	}
	rows = append(rows, row)

	row = []string{labelMatrNr, ""}
	for _, s := range students {
		url := g.meta.WikiURL + "Main/" + s.Wikiname() + assignment.Submission
		row = append(row, hyperlink(url, s.Wikiname()))
	}
	rows = append(rows, row)

	// Exercise and criterion rows; criterion row indices feed the total
	// formulas below.
	var criterionRows []int
	for _, exercise := range scheme.Exercises {
		rows = append(rows, labelRow(exercise.Name, width))
		for _, criterion := range exercise.Criteria {
			r := make([]string, width)
			r[0] = criterion.Label
			r[1] = strconv.Itoa(criterion.Points)
			criterionRows = append(criterionRows, len(rows))
			rows = append(rows, r)
		}
		rows = append(rows, make([]string, width))
	}

	buckets, err := packReferences(criterionRows)
	if err != nil {
		return Grid{}, err
	}

	totalRow := len(rows)
	deadlineRow := totalRow + 1
	bonusRow := totalRow + 2
	firstSplitRow := totalRow + 3
	splits := len(buckets) - 1

	// Width was checked above, so cell addressing cannot fail here.
	cell := func(col, rowIdx int) string {
		id, _ := CellID(col, rowIdx)
		return id
	}
	absCell := func(col, rowIdx int) string {
		id, _ := AbsCellID(col, rowIdx)
		return id
	}

	row = []string{labelTotal, ""}
	for sID := range students {
		col := sID + 2
		args := make([]string, 0, len(buckets[0])+2+splits)
		for _, ref := range buckets[0] {
			args = append(args, conditionalPoints(cell(col, ref), absCell(1, ref)))
		}
		args = append(args, cell(col, deadlineRow), cell(col, bonusRow))
		for i := 0; i < splits; i++ {
			args = append(args, cell(col, firstSplitRow+i))
		}
		row = append(row, sumFormula(args))
	}
	rows = append(rows, row)

	rows = append(rows, labelRow(labelDeadline, width))
	rows = append(rows, labelRow(labelBonus, width))

	for _, bucket := range buckets[1:] {
		row = []string{labelSplit, ""}
		for sID := range students {
			col := sID + 2
			args := make([]string, 0, len(bucket))
			for _, ref := range bucket {
				args = append(args, conditionalPoints(cell(col, ref), absCell(1, ref)))
			}
			row = append(row, sumFormula(args))
		}
		rows = append(rows, row)
	}

	return Grid{Name: assignment.Name, Rows: rows}, nil
}

// totalRowIndex returns the zero-based row of the generated total row in
// an assignment grid: title and wikiname rows, then per exercise a label
// row, its criterion rows and a blank separator.
func totalRowIndex(scheme domain.AssignmentScheme) int {
	return 2 + 2*len(scheme.Exercises) + scheme.CriterionCount()
}

func labelRow(label string, width int) []string {
	row := make([]string, width)
	row[0] = label
	return row
}

func checkWidth(width int) error {
	if width > maxColumns {
		return errors.NewWithDetails(errors.KindInternal, "CELL_RANGE_EXCEEDED",
			"too many students for one grid", width)
	}
	return nil
}
