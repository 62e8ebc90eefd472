package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"rosterctl/internal/errors"
	"rosterctl/internal/roster"
)

// Overview header cells the grade import needs.
const (
	matrNrColumnHeader = "Matriculation number"
	gradeColumnHeader  = "Final grade"
)

// ImportGrades reads a filled-in overview CSV and returns the roster with
// the final grades applied. Rows without a matriculation number and grade
// cells still holding formula text are skipped; everything else must
// resolve to a known student and a valid grade.
func ImportGrades(input io.Reader, r roster.Roster) (roster.Roster, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return roster.Roster{}, errors.FileSystemError("reading overview CSV", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return roster.Roster{}, errors.ParseError("overview CSV", err)
	}
	if len(rows) == 0 {
		return roster.Roster{}, errors.ParseErrorf("overview CSV is empty")
	}

	matrNrCol, gradeCol := -1, -1
	for idx, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case matrNrColumnHeader:
			matrNrCol = idx
		case gradeColumnHeader:
			gradeCol = idx
		}
	}
	if matrNrCol < 0 || gradeCol < 0 {
		return roster.Roster{}, errors.ParseErrorf(
			"overview CSV must carry %q and %q columns", matrNrColumnHeader, gradeColumnHeader)
	}

	updated := 0
	for rowNum, row := range rows[1:] {
		if matrNrCol >= len(row) || strings.TrimSpace(row[matrNrCol]) == "" {
			continue
		}
		matrnr, err := strconv.Atoi(strings.TrimSpace(row[matrNrCol]))
		if err != nil {
			return roster.Roster{}, fmt.Errorf("row %d: %w",
				rowNum+2, errors.ParseError("matriculation number", err))
		}

		var gradeCell string
		if gradeCol < len(row) {
			gradeCell = strings.TrimSpace(row[gradeCol])
		}
		if gradeCell == "" || strings.HasPrefix(gradeCell, "=") {
			continue
		}
		grade, err := strconv.Atoi(gradeCell)
		if err != nil {
			return roster.Roster{}, fmt.Errorf("row %d: %w",
				rowNum+2, errors.ParseError("final grade", err))
		}

		r, err = roster.Apply(r, matrnr, roster.FieldPatch{Grade: &grade})
		if err != nil {
			return roster.Roster{}, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		updated++
	}

	slog.Info("Imported grades", slog.Int("updated", updated))
	return r, nil
}
