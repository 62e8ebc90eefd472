package domain

import (
	"fmt"
	"sort"
	"time"

	"rosterctl/internal/errors"
)

// Course describes one course students may belong to.
type Course struct {
	Title    string `validate:"required"`
	Lecturer string `validate:"required"`
	Type     string `validate:"required"`
	ID       string `validate:"required"`
}

// Tutor describes a tutor and the groups they supervise.
type Tutor struct {
	ID        string `validate:"required"`
	LastName  string `validate:"required"`
	FirstName string `validate:"required"`
	Email     string `validate:"required,email"`
	Groups    []int  `validate:"dive,gte=0"`
}

// AssignmentMeta carries the per-assignment settings the spreadsheet
// generator needs: where students submit and, optionally, where partner
// submissions live.
type AssignmentMeta struct {
	Name              string    `validate:"required"`
	Deadline          time.Time `validate:"required"`
	Submission        string    `validate:"required"`
	PartnerSubmission string    `validate:"-"`
}

// GradeBoundary maps one grade to its inclusive point range. Grade 1 is
// the best grade; higher points mean a better grade.
type GradeBoundary struct {
	Grade int    `validate:"required,gte=1,lte=5"`
	Name  string `validate:"required"`
	Min   int    `validate:"gte=0"`
	Max   int    `validate:"gtefield=Min"`
}

// CourseMeta is the course-wide configuration parsed from metadata.xml.
type CourseMeta struct {
	Courses     []Course
	Tutors      []Tutor
	Assignments []AssignmentMeta
	Grades      []GradeBoundary
	WikiURL     string
	WikiPath    string
}

// GradeNames are the five grade labels in descending order of achievement.
var GradeNames = []string{"excellent", "good", "satisfactory", "sufficient", "insufficient"}

// Assignment returns the metadata for the named assignment.
func (m CourseMeta) Assignment(name string) (AssignmentMeta, bool) {
	for _, a := range m.Assignments {
		if a.Name == name {
			return a, true
		}
	}
	return AssignmentMeta{}, false
}

// GradesByMaxAscending returns the grade boundaries ordered by ascending
// maximum points, worst grade first. This is the evaluation order of the
// generated grade formula.
func (m CourseMeta) GradesByMaxAscending() []GradeBoundary {
	sorted := append([]GradeBoundary(nil), m.Grades...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Max < sorted[j].Max })
	return sorted
}

// Validate checks course ID uniqueness, assignment name uniqueness and
// grade boundary contiguity: sorted by points, each grade's minimum must be
// exactly one above the previous grade's maximum.
func (m CourseMeta) Validate() error {
	for _, c := range m.Courses {
		if err := validate.Struct(c); err != nil {
			return fmt.Errorf("course %q invalid: %w", c.ID, err)
		}
	}
	for _, t := range m.Tutors {
		if err := validate.Struct(t); err != nil {
			return fmt.Errorf("tutor %q invalid: %w", t.ID, err)
		}
	}
	for _, a := range m.Assignments {
		if err := validate.Struct(a); err != nil {
			return fmt.Errorf("assignment %q invalid: %w", a.Name, err)
		}
	}
	for _, g := range m.Grades {
		if err := validate.Struct(g); err != nil {
			return fmt.Errorf("grade %d invalid: %w", g.Grade, err)
		}
	}

	courseIDs := make(map[string]bool)
	for _, c := range m.Courses {
		if courseIDs[c.ID] {
			return errors.DuplicateKeyError("Course ID", c.ID)
		}
		courseIDs[c.ID] = true
	}

	names := make(map[string]bool)
	for _, a := range m.Assignments {
		if names[a.Name] {
			return errors.DuplicateKeyError("Assignment name", a.Name)
		}
		names[a.Name] = true
	}

	if len(m.Grades) == 0 {
		return errors.New(errors.KindValidation, "SCHEME_INVALID", "no grade boundaries defined")
	}
	sorted := m.GradesByMaxAscending()
	for i, g := range sorted {
		if g.Min > g.Max {
			return errors.NewWithDetails(errors.KindValidation, "SCHEME_INVALID",
				"grade boundary not monotonically increasing", g.Grade)
		}
		if i > 0 && g.Min != sorted[i-1].Max+1 {
			return errors.NewWithDetails(errors.KindValidation, "SCHEME_INVALID",
				fmt.Sprintf("grade boundaries must be contiguous: grade %d starts at %d, previous ends at %d",
					g.Grade, g.Min, sorted[i-1].Max), g.Grade)
		}
	}

	return nil
}
