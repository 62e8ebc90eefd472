// Package exporter writes generated artefacts to disk: grading grids as
// CSV files or a combined XLSX workbook, and rosters as registration-style
// CSV. All file writes go through overwrite confirmation; "-" as a path
// selects standard output.
package exporter
