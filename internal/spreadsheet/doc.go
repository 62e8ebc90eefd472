// Package spreadsheet generates grading spreadsheet grids.
//
// The generator consumes a roster filtered to one group and sorted by
// wikiname, plus the course metadata and grading scheme, and emits one
// grid per assignment and one cross-assignment overview grid. Cells hold
// literal values or spreadsheet formula text referencing other cells. No
// evaluation happens here; the grid layout is fixed and known, so all
// addresses are computed up front.
//
// Formula argument separators are semicolons throughout, matching the
// locale of the spreadsheet software the course staff uses.
package spreadsheet
