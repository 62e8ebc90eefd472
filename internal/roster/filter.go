package roster

import (
	"strings"
	"time"

	"rosterctl/internal/domain"
)

// Predicate decides whether a record belongs in a filtered roster.
type Predicate func(domain.StudentRecord) bool

// Filter returns a new roster containing copies of the records satisfying
// the conjunction of all given predicates. With no predicates it is a copy.
func Filter(r Roster, predicates ...Predicate) (Roster, error) {
	var subset []domain.StudentRecord
	for _, rec := range r.records {
		keep := true
		for _, pred := range predicates {
			if !pred(rec) {
				keep = false
				break
			}
		}
		if keep {
			subset = append(subset, rec.Copy())
		}
	}
	return New(subset...)
}

// MatchMatrNr matches an exact matriculation number.
func MatchMatrNr(matrnr int) Predicate {
	return func(s domain.StudentRecord) bool { return s.MatrNr == matrnr }
}

// NotMatrNr excludes one matriculation number; removal by filter exclusion.
func NotMatrNr(matrnr int) Predicate {
	return func(s domain.StudentRecord) bool { return s.MatrNr != matrnr }
}

// MatchEmail matches an exact email address.
func MatchEmail(email string) Predicate {
	return func(s domain.StudentRecord) bool { return s.Email == email }
}

// MatchGrade matches an exact grade.
func MatchGrade(grade int) Predicate {
	return func(s domain.StudentRecord) bool { return s.Grade == grade }
}

// MatchDegree matches an exact degree programme.
func MatchDegree(degree string) Predicate {
	return func(s domain.StudentRecord) bool { return s.Degree == degree }
}

// MatchFirstName matches the first name case-insensitively.
func MatchFirstName(name string) Predicate {
	return func(s domain.StudentRecord) bool { return strings.EqualFold(s.FirstName, name) }
}

// MatchLastName matches the last name case-insensitively.
func MatchLastName(name string) Predicate {
	return func(s domain.StudentRecord) bool { return strings.EqualFold(s.LastName, name) }
}

// MatchWikiname matches the derived or overridden wikiname exactly.
func MatchWikiname(wikiname string) Predicate {
	return func(s domain.StudentRecord) bool { return s.Wikiname() == wikiname }
}

// InGroup matches membership in the given group.
func InGroup(group int) Predicate {
	return func(s domain.StudentRecord) bool { return s.InGroup(group) }
}

// RegisteredAt matches an exact registration timestamp.
func RegisteredAt(t time.Time) Predicate {
	return func(s domain.StudentRecord) bool { return s.RegDate.Equal(t) }
}

// RegisteredBefore matches registrations strictly before t.
func RegisteredBefore(t time.Time) Predicate {
	return func(s domain.StudentRecord) bool { return s.RegDate.Before(t) }
}

// RegisteredAfter matches registrations strictly after t.
func RegisteredAfter(t time.Time) Predicate {
	return func(s domain.StudentRecord) bool { return s.RegDate.After(t) }
}
