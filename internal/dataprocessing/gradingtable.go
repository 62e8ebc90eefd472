package dataprocessing

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
)

// ParseGradingTableFile reads the grading points table from disk.
func ParseGradingTableFile(path string) (domain.GradingScheme, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.GradingScheme{}, errors.FileSystemError("opening grading points table", err)
	}
	defer f.Close()

	scheme, err := ParseGradingTable(f)
	if err != nil {
		return domain.GradingScheme{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return scheme, nil
}

// ParseGradingTable parses the simplified pipe-delimited grading table.
//
// Every table row has three cells. A row whose first cell is bold-marked
// (*...*) and whose second cell is empty starts a new assignment section,
// with the declared assignment total in the third cell. A row whose first
// cell is blank (indented) adds a criterion/points pair to the current
// exercise. Any other row starts an exercise, with the declared exercise
// total in the third cell. Point sums are cross-checked against declared
// totals before the scheme is returned.
func ParseGradingTable(input io.Reader) (domain.GradingScheme, error) {
	table, err := readPipeTable(input)
	if err != nil {
		return domain.GradingScheme{}, err
	}
	if len(table) == 0 {
		return domain.GradingScheme{}, errors.ParseErrorf("grading scheme table must not be empty")
	}

	var scheme domain.GradingScheme
	for rowNum, row := range table {
		if len(row) != 3 {
			return domain.GradingScheme{}, errors.ParseErrorf(
				"grading points table row %d has %d columns, want 3", rowNum+1, len(row))
		}

		first := strings.TrimSpace(row[0])
		switch {
		case isBold(first) && strings.TrimSpace(row[1]) == "":
			total, err := parsePoints(row[2])
			if err != nil {
				return domain.GradingScheme{}, err
			}
			scheme.Assignments = append(scheme.Assignments, domain.AssignmentScheme{
				Name:  strings.Trim(first, "*"),
				Total: total,
			})

		case first == "":
			if len(scheme.Assignments) == 0 {
				return domain.GradingScheme{}, errors.ParseErrorf("assignment line required before points line")
			}
			current := &scheme.Assignments[len(scheme.Assignments)-1]
			if len(current.Exercises) == 0 {
				return domain.GradingScheme{}, errors.ParseErrorf("exercise line required before points line")
			}
			points, err := parsePoints(row[2])
			if err != nil {
				return domain.GradingScheme{}, err
			}
			exercise := &current.Exercises[len(current.Exercises)-1]
			exercise.Criteria = append(exercise.Criteria, domain.Criterion{
				Label:  strings.TrimSpace(row[1]),
				Points: points,
			})

		default:
			if len(scheme.Assignments) == 0 {
				return domain.GradingScheme{}, errors.ParseErrorf("assignment line required before exercise")
			}
			total, err := parsePoints(row[2])
			if err != nil {
				return domain.GradingScheme{}, err
			}
			current := &scheme.Assignments[len(scheme.Assignments)-1]
			current.Exercises = append(current.Exercises, domain.Exercise{
				Name:  first,
				Total: total,
			})
		}
	}

	if err := scheme.Validate(); err != nil {
		return domain.GradingScheme{}, err
	}

	slog.Info("Parsed grading scheme",
		slog.Int("assignments", len(scheme.Assignments)))
	return scheme, nil
}

// readPipeTable extracts the first pipe table from a wiki article. Rows
// before the table are skipped; the table ends at the first non-table line
// after it started. Markup inside cells is not removed.
func readPipeTable(input io.Reader) ([][]string, error) {
	var table [][]string
	found := false

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "|") {
			if found {
				break
			}
			continue
		}
		found = true

		fields := strings.Split(line, "|")
		if fields[0] != "" {
			return nil, errors.ParseErrorf("table line must start with |, but got: %q", fields[0])
		}
		if strings.TrimSpace(fields[len(fields)-1]) != "" {
			return nil, errors.ParseErrorf("table line must end with |, but got: %q", fields[len(fields)-1])
		}

		row := make([]string, 0, len(fields)-2)
		for _, cell := range fields[1 : len(fields)-1] {
			row = append(row, normalizeCell(cell))
		}
		table = append(table, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.FileSystemError("reading grading points table", err)
	}
	return table, nil
}

// normalizeCell collapses whitespace-only cells to a single space so that
// indentation survives while empty cells stay empty.
func normalizeCell(cell string) string {
	if len(cell) > 0 && strings.TrimSpace(cell) == "" {
		return " "
	}
	return cell
}

func isBold(cell string) bool {
	return len(cell) >= 2 && strings.HasPrefix(cell, "*") && strings.HasSuffix(cell, "*")
}

func parsePoints(cell string) (int, error) {
	points, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, errors.ParseError("points value", err)
	}
	return points, nil
}
