package roster

import (
	"time"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
)

// FieldPatch describes an explicit per-field update of one record. A nil
// field means keep the current value; a set field replaces it. There is no
// implicit coercion: every field arrives already parsed to its own type.
type FieldPatch struct {
	Groups           *[]int
	LastName         *string
	FirstName        *string
	WikinameOverride *string
	Degree           *string
	RegDate          *time.Time
	Email            *string
	Grade            *int
}

// Apply returns a new roster in which the record with the given
// matriculation number has the patch applied. The input roster is
// untouched; the result is re-validated.
func Apply(r Roster, matrnr int, patch FieldPatch) (Roster, error) {
	if !r.Contains(matrnr) {
		return Roster{}, errors.NewWithDetails(errors.KindInternal, "NOT_FOUND",
			"no student with this matriculation number", matrnr)
	}

	updated := make([]domain.StudentRecord, 0, r.Len())
	for _, rec := range r.records {
		c := rec.Copy()
		if c.MatrNr == matrnr {
			c = patch.applyTo(c)
		}
		updated = append(updated, c)
	}
	return New(updated...)
}

func (p FieldPatch) applyTo(s domain.StudentRecord) domain.StudentRecord {
	if p.Groups != nil {
		s.Groups = domain.NormalizeGroups(*p.Groups)
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.WikinameOverride != nil {
		s.WikinameOverride = *p.WikinameOverride
	}
	if p.Degree != nil {
		s.Degree = *p.Degree
	}
	if p.RegDate != nil {
		s.RegDate = *p.RegDate
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Grade != nil {
		s.Grade = *p.Grade
	}
	return s
}
