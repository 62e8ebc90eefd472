// Package roster implements the student roster: a set of records keyed by
// matriculation number, with invariant checking and pure merge, difference
// and filter operations.
//
// Every operation that produces a roster runs the consistency check before
// returning. Rosters are immutable; operations copy records and return
// fresh values, inputs are never touched.
package roster

import (
	"fmt"
	"sort"
	"time"

	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
)

// Roster is a validated set of student records.
type Roster struct {
	records []domain.StudentRecord
}

// New builds a roster from the given records. Each record is copied and
// field-validated, and the roster-wide consistency check must pass.
func New(records ...domain.StudentRecord) (Roster, error) {
	copied := make([]domain.StudentRecord, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return Roster{}, err
		}
		c := rec.Copy()
		c.Groups = domain.NormalizeGroups(c.Groups)
		copied = append(copied, c)
	}
	if err := Check(copied); err != nil {
		return Roster{}, err
	}
	return Roster{records: copied}, nil
}

// NewMerging builds a roster like New, but records sharing a matriculation
// number are folded into one record carrying the union of their group sets.
// This is the semantics of loading a dataset that lists a student once per
// group registration.
func NewMerging(records ...domain.StudentRecord) (Roster, error) {
	byMatrNr := make(map[int]int)
	var merged []domain.StudentRecord
	for _, rec := range records {
		if idx, ok := byMatrNr[rec.MatrNr]; ok {
			merged[idx] = merged[idx].WithGroups(merged[idx].Groups, rec.Groups)
			continue
		}
		byMatrNr[rec.MatrNr] = len(merged)
		merged = append(merged, rec.Copy())
	}
	return New(merged...)
}

// Check validates roster-wide invariants over a candidate record collection:
// unique matriculation numbers, unique wikinames, and at most one non-zero
// group membership per student. It performs no repair.
func Check(records []domain.StudentRecord) error {
	nums := make(map[int]bool, len(records))
	for _, rec := range records {
		if nums[rec.MatrNr] {
			return errors.DuplicateKeyError("Matriculation number", rec.MatrNr)
		}
		nums[rec.MatrNr] = true
	}

	names := make(map[string]bool, len(records))
	for _, rec := range records {
		wikiname := rec.Wikiname()
		if names[wikiname] {
			return errors.DuplicateKeyError("Wikiname", wikiname)
		}
		names[wikiname] = true
	}

	for _, rec := range records {
		if real := rec.RealGroups(); len(real) > 1 {
			return errors.GroupConstraintError(rec.Wikiname(), rec.Groups)
		}
	}

	return nil
}

// Len returns the number of records.
func (r Roster) Len() int {
	return len(r.records)
}

// Contains reports membership by matriculation number.
func (r Roster) Contains(matrnr int) bool {
	_, ok := r.Get(matrnr)
	return ok
}

// Get returns a copy of the record with the given matriculation number.
func (r Roster) Get(matrnr int) (domain.StudentRecord, bool) {
	for _, rec := range r.records {
		if rec.MatrNr == matrnr {
			return rec.Copy(), true
		}
	}
	return domain.StudentRecord{}, false
}

// Records returns copies of all records in unspecified order.
func (r Roster) Records() []domain.StudentRecord {
	out := make([]domain.StudentRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Copy())
	}
	return out
}

// SortedByMatrNr returns copies sorted by matriculation number ascending,
// the canonical serialization order.
func (r Roster) SortedByMatrNr() []domain.StudentRecord {
	out := r.Records()
	sort.Slice(out, func(i, j int) bool { return out[i].MatrNr < out[j].MatrNr })
	return out
}

// SortedByWikiname returns copies sorted by wikiname ascending, the order
// used in generated spreadsheets.
func (r Roster) SortedByWikiname() []domain.StudentRecord {
	out := r.Records()
	sort.Slice(out, func(i, j int) bool { return out[i].Wikiname() < out[j].Wikiname() })
	return out
}

// SortedByRegDate returns copies sorted by registration timestamp ascending.
func (r Roster) SortedByRegDate() []domain.StudentRecord {
	out := r.Records()
	sort.Slice(out, func(i, j int) bool { return out[i].RegDate.Before(out[j].RegDate) })
	return out
}

// Groups returns the sorted set of all group identifiers present.
func (r Roster) Groups() []int {
	var all []int
	for _, rec := range r.records {
		all = append(all, rec.Groups...)
	}
	return domain.NormalizeGroups(all)
}

// LatestRegistration returns the most recent registration timestamp.
func (r Roster) LatestRegistration() (time.Time, error) {
	if len(r.records) == 0 {
		return time.Time{}, errors.New(errors.KindValidation, "VALIDATION_FAILED", "dataset is empty")
	}
	latest := r.records[0].RegDate
	for _, rec := range r.records[1:] {
		if rec.RegDate.After(latest) {
			latest = rec.RegDate
		}
	}
	return latest, nil
}

func (r Roster) String() string {
	return fmt.Sprintf("<Roster containing %d students>", len(r.records))
}
