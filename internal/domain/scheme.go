package domain

import (
	"fmt"

	"rosterctl/internal/errors"
)

// Criterion is a single scoring line beneath an exercise. Points may be
// negative for deduction criteria; declared totals count absolute values.
type Criterion struct {
	Label  string
	Points int
}

// Exercise groups the criteria of one grading exercise with its declared
// expected total.
type Exercise struct {
	Name     string
	Total    int
	Criteria []Criterion
}

// AssignmentScheme holds the ordered exercises of one assignment and its
// declared expected total.
type AssignmentScheme struct {
	Name      string
	Total     int
	Exercises []Exercise
}

// GradingScheme is the ordered point allocation across assignments,
// exercises and criteria. It is parsed once and immutable afterwards.
type GradingScheme struct {
	Assignments []AssignmentScheme
}

// Assignment returns the scheme section for the named assignment.
func (g GradingScheme) Assignment(name string) (AssignmentScheme, bool) {
	for _, a := range g.Assignments {
		if a.Name == name {
			return a, true
		}
	}
	return AssignmentScheme{}, false
}

// CriterionCount returns the number of criterion lines in one assignment.
func (a AssignmentScheme) CriterionCount() int {
	n := 0
	for _, ex := range a.Exercises {
		n += len(ex.Criteria)
	}
	return n
}

// Validate checks that the sum of absolute criterion points per exercise
// equals the exercise's declared total, and that exercise totals sum to the
// assignment's declared total.
func (g GradingScheme) Validate() error {
	for _, a := range g.Assignments {
		assignmentSum := 0
		for _, ex := range a.Exercises {
			exerciseSum := 0
			for _, c := range ex.Criteria {
				if c.Points < 0 {
					exerciseSum -= c.Points
				} else {
					exerciseSum += c.Points
				}
			}
			if exerciseSum != ex.Total {
				return errors.SchemeError(fmt.Sprintf("%s, %s", a.Name, ex.Name), exerciseSum, ex.Total)
			}
			assignmentSum += exerciseSum
		}
		if assignmentSum != a.Total {
			return errors.SchemeError(a.Name, assignmentSum, a.Total)
		}
	}
	return nil
}
