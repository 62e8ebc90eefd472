package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
	"rosterctl/internal/roster"
)

// Field names of the roster exchange format.
const (
	fieldGroup     = "group"
	fieldLastName  = "lastname"
	fieldFirstName = "firstname"
	fieldMatrNr    = "matriculation-number"
	fieldDegree    = "degree-programme"
	fieldRegDate   = "registration-date"
	fieldEmail     = "email"
)

// csvHeaderMapping maps registration office CSV headers to record fields.
// The header names are the wire format of the upstream export and are not
// translated.
var csvHeaderMapping = map[string]string{
	"Gruppe":                  fieldGroup,
	"Familien- oder Nachname": fieldLastName,
	"Vorname":                 fieldFirstName,
	"Matrikelnummer":          fieldMatrNr,
	"Studium":                 fieldDegree,
	"Anmeldedatum":            fieldRegDate,
	"E-Mail":                  fieldEmail,
}

// csvExportHeader is the column order of roster CSV exports.
var csvExportHeader = []string{
	"Matrikelnummer", "Gruppe", "Familien- oder Nachname", "Vorname",
	"Studium", "Anmeldedatum", "E-Mail",
}

// minRecognizedColumns is the minimum number of mapped header columns an
// import must provide.
const minRecognizedColumns = 7

// utf8BOM prefixes CSV files exported for (or by) spreadsheet software.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var nonDigits = regexp.MustCompile(`\D`)

// ParseGroupID parses a group identifier like "Standardgruppe" or
// "Gruppe 3". Group 0 represents lecture participants.
func ParseGroupID(value string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(value), "Standardgruppe") {
		return 0, nil
	}
	digits := nonDigits.ReplaceAllString(value, "")
	if digits == "" {
		return 0, errors.ParseErrorf("cannot interpret %q as a group identifier", value)
	}
	group, err := strconv.Atoi(digits)
	if err != nil {
		return 0, errors.ParseError("group identifier", err)
	}
	return group, nil
}

// ParseStudentCSVFile reads a registration CSV from disk.
func ParseStudentCSVFile(path string) (roster.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return roster.Roster{}, errors.FileSystemError("opening student CSV", err)
	}
	defer f.Close()

	r, err := ParseStudentCSV(f)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if r.Len() == 0 {
		slog.Warn("No students given in CSV", slog.String("path", path))
	}
	return r, nil
}

// ParseStudentCSV reads a registration CSV export. The delimiter is
// autodetected from a header sample: a semicolon anywhere in the first 50
// bytes selects the semicolon dialect, otherwise comma. Students listed
// once per group registration are folded into one record.
func ParseStudentCSV(input io.Reader) (roster.Roster, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return roster.Roster{}, errors.FileSystemError("reading student CSV", err)
	}
	// Registration office exports and our own CSV output carry a byte
	// order mark; left in place it corrupts the first header cell.
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)

	rows, err := reader.ReadAll()
	if err != nil {
		return roster.Roster{}, errors.ParseError("student CSV", err)
	}
	if len(rows) == 0 {
		return roster.Roster{}, errors.ParseErrorf("student CSV is empty")
	}

	header := rows[0]
	if len(header) == 1 {
		return roster.Roster{}, errors.ParseErrorf(
			"only one column read from CSV; the delimiter detection probably guessed wrong")
	}

	columns := make(map[int]string)
	for idx, name := range header {
		if field, ok := csvHeaderMapping[strings.TrimSpace(name)]; ok {
			columns[idx] = field
		}
	}
	if len(columns) < minRecognizedColumns {
		return roster.Roster{}, errors.ParseErrorf(
			"at least %d recognized CSV columns are required, only found %d",
			minRecognizedColumns, len(columns))
	}

	slog.Debug("Parsed CSV header",
		slog.Int("columns", len(header)),
		slog.Int("recognized", len(columns)),
		slog.String("delimiter", string(reader.Comma)))

	var records []domain.StudentRecord
	for rowNum, row := range rows[1:] {
		rec, err := recordFromRow(row, columns)
		if err != nil {
			return roster.Roster{}, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		records = append(records, rec)
	}

	return roster.NewMerging(records...)
}

// detectDelimiter sniffs the delimiter from the first bytes of the input.
func detectDelimiter(data []byte) rune {
	sample := data
	if len(sample) > 50 {
		sample = sample[:50]
	}
	if bytes.ContainsRune(sample, ';') {
		return ';'
	}
	return ','
}

func recordFromRow(row []string, columns map[int]string) (domain.StudentRecord, error) {
	var rec domain.StudentRecord
	for idx, field := range columns {
		if idx >= len(row) {
			return rec, errors.ParseErrorf("row has no column %d", idx)
		}
		if err := setField(&rec, field, strings.TrimSpace(row[idx])); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func setField(rec *domain.StudentRecord, field, value string) error {
	switch field {
	case fieldMatrNr:
		matrnr, err := strconv.Atoi(value)
		if err != nil {
			return errors.ParseError("matriculation number", err)
		}
		rec.MatrNr = matrnr
	case fieldGroup:
		group, err := ParseGroupID(value)
		if err != nil {
			return err
		}
		rec.Groups = domain.NormalizeGroups(append(rec.Groups, group))
	case fieldLastName:
		rec.LastName = value
	case fieldFirstName:
		rec.FirstName = value
	case fieldDegree:
		rec.Degree = value
	case fieldRegDate:
		t, err := ParseDate(value)
		if err != nil {
			return err
		}
		rec.RegDate = t
	case fieldEmail:
		rec.Email = value
	default:
		return errors.ParseErrorf("unknown student field %q", field)
	}
	return nil
}

// RosterToCSVRows renders a roster as exchange CSV rows, header first,
// sorted by matriculation number ascending.
func RosterToCSVRows(r roster.Roster) [][]string {
	rows := [][]string{append([]string(nil), csvExportHeader...)}
	for _, rec := range r.SortedByMatrNr() {
		var groups []string
		for _, g := range rec.Groups {
			groups = append(groups, strconv.Itoa(g))
		}
		rows = append(rows, []string{
			strconv.Itoa(rec.MatrNr),
			strings.Join(groups, " "),
			rec.LastName,
			rec.FirstName,
			rec.Degree,
			rec.RegDate.Format(iso8601),
			rec.Email,
		})
	}
	return rows
}
