package exporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rosterctl/internal/config"
	"rosterctl/internal/dataprocessing"
	"rosterctl/internal/errors"
	"rosterctl/internal/roster"
	"rosterctl/internal/spreadsheet"
	"rosterctl/internal/xmlstore"
)

// utf8BOM marks CSV output so spreadsheet imports pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter writes generated files with overwrite protection.
type Exporter struct {
	paths   *config.Paths
	confirm xmlstore.ConfirmFunc
	stdout  io.Writer
}

// New creates an exporter using the given confirmation prompt.
func New(paths *config.Paths, confirm xmlstore.ConfirmFunc) *Exporter {
	return &Exporter{paths: paths, confirm: confirm, stdout: os.Stdout}
}

// WriteSpreadsheets stores one CSV file per grid, named after the
// configured template for the given group.
func (e *Exporter) WriteSpreadsheets(grids []spreadsheet.Grid, group int) error {
	for _, grid := range grids {
		path, err := e.paths.SpreadsheetPath(group, grid.Name)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := writeCSV(&buf, grid.Rows); err != nil {
			return err
		}
		if err := e.writeFile(path, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// WriteRosterCSV stores a roster in the registration office CSV layout.
func (e *Exporter) WriteRosterCSV(path string, r roster.Roster) error {
	var buf bytes.Buffer
	if err := writeCSV(&buf, dataprocessing.RosterToCSVRows(r)); err != nil {
		return err
	}
	return e.writeFile(path, buf.Bytes())
}

// writeCSV emits rows with a byte order mark, every field quoted. The
// standard csv writer only quotes fields that need it, but the formula
// cells must stay quoted so delimiters inside them survive a re-import.
func writeCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			quoted := `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
			if _, err := io.WriteString(w, quoted); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes fully assembled content, prompting before an overwrite.
func (e *Exporter) writeFile(path string, content []byte) error {
	if path == "-" {
		if _, err := e.stdout.Write(content); err != nil {
			return errors.FileSystemError("writing to stdout", err)
		}
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		if !e.confirm(fmt.Sprintf("%s exists already. Overwrite?", path)) {
			slog.Info("Aborted on user request", slog.String("path", path))
			return fmt.Errorf("writing %s: %w", path, errors.ErrUserAbort)
		}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.FileSystemError("writing export", err)
	}
	slog.Info("Export written", slog.String("path", path), slog.Int("bytes", len(content)))
	return nil
}
