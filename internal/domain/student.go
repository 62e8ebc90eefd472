package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"rosterctl/internal/identity"
)

// validate is the shared validator instance for domain types
var validate = validator.New()

// StudentRecord represents one registered student.
//
// Groups holds tutorial group memberships; group 0 denotes lecture-only
// participation. Grade 0 means ungraded. WikinameOverride, when set,
// replaces the derived wikiname everywhere.
type StudentRecord struct {
	MatrNr           int       `validate:"required,gt=0"`
	Groups           []int     `validate:"dive,gte=0"`
	LastName         string    `validate:"required"`
	FirstName        string    `validate:"required"`
	WikinameOverride string    `validate:"-"`
	Degree           string    `validate:"-"`
	RegDate          time.Time `validate:"required"`
	Email            string    `validate:"required,email"`
	Grade            int       `validate:"gte=0,lte=5"`
}

// Wikiname returns the explicit override if one was stored, otherwise the
// identifier derived from the student's name.
func (s StudentRecord) Wikiname() string {
	if s.WikinameOverride != "" {
		return s.WikinameOverride
	}
	return identity.Derive(s.FirstName, s.LastName)
}

// Copy returns a deep copy; the group slice is never shared.
func (s StudentRecord) Copy() StudentRecord {
	c := s
	c.Groups = append([]int(nil), s.Groups...)
	return c
}

// Validate checks the record's field-level invariants.
func (s StudentRecord) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("student #%d invalid: %w", s.MatrNr, err)
	}
	return nil
}

// InGroup reports membership in group g.
func (s StudentRecord) InGroup(g int) bool {
	for _, have := range s.Groups {
		if have == g {
			return true
		}
	}
	return false
}

// RealGroups returns the non-zero group memberships.
func (s StudentRecord) RealGroups() []int {
	var real []int
	for _, g := range s.Groups {
		if g != 0 {
			real = append(real, g)
		}
	}
	return real
}

// WithGroups returns a copy whose group set is replaced by the normalized
// union of the given groups.
func (s StudentRecord) WithGroups(groups ...[]int) StudentRecord {
	c := s.Copy()
	var all []int
	for _, gs := range groups {
		all = append(all, gs...)
	}
	c.Groups = NormalizeGroups(all)
	return c
}

// Graded reports whether a grade has been assigned.
func (s StudentRecord) Graded() bool {
	return s.Grade != 0
}

func (s StudentRecord) String() string {
	return fmt.Sprintf("<Student #%d %s>", s.MatrNr, s.Wikiname())
}

// NormalizeGroups sorts and deduplicates a group membership list.
func NormalizeGroups(groups []int) []int {
	if len(groups) == 0 {
		return nil
	}
	sorted := append([]int(nil), groups...)
	sort.Ints(sorted)
	out := sorted[:1]
	for _, g := range sorted[1:] {
		if g != out[len(out)-1] {
			out = append(out, g)
		}
	}
	return out
}
