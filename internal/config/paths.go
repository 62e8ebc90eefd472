package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Paths resolves configured file names against the data directory.
type Paths struct {
	cfg PathsConfig
}

// NewPaths creates a resolver for the given paths configuration.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{cfg: cfg}
}

// StudentsPath returns the roster database location.
func (p *Paths) StudentsPath() string {
	return p.resolve(p.cfg.StudentsFile)
}

// MetadataPath returns the course metadata location.
func (p *Paths) MetadataPath() string {
	return p.resolve(p.cfg.MetadataFile)
}

// GradingPath returns the grading points table location.
func (p *Paths) GradingPath() string {
	return p.resolve(p.cfg.GradingFile)
}

// SpreadsheetPath expands the spreadsheet filename template for one group
// and assignment. Both parameters are mandatory.
func (p *Paths) SpreadsheetPath(group int, assignment string) (string, error) {
	if assignment == "" {
		return "", fmt.Errorf("assignment name is required for spreadsheet path")
	}
	name := strings.NewReplacer(
		"{group}", fmt.Sprintf("%d", group),
		"{assignment}", assignment,
	).Replace(p.cfg.SpreadsheetTemplate)
	return p.resolve(name), nil
}

func (p *Paths) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.cfg.DataDir, name)
}
