package roster

import (
	"log/slog"

	"rosterctl/internal/domain"
)

// Union merges two rosters. For matriculation numbers present in both, the
// result carries a's record with the union of both group sets; a merge is
// informational, not an error. Records present in only one side are copied
// as-is. The result is re-validated.
func Union(a, b Roster) (Roster, error) {
	slog.Info("Merging two datasets",
		slog.Int("left_count", a.Len()),
		slog.Int("right_count", b.Len()))

	byMatrNr := make(map[int]int, a.Len())
	merged := a.Records()
	for i, rec := range merged {
		byMatrNr[rec.MatrNr] = i
	}

	for _, rec := range b.Records() {
		idx, ok := byMatrNr[rec.MatrNr]
		if !ok {
			byMatrNr[rec.MatrNr] = len(merged)
			merged = append(merged, rec)
			continue
		}
		merged[idx] = merged[idx].WithGroups(merged[idx].Groups, rec.Groups)
		slog.Info("Student contained in both sets, merging groups",
			slog.Int("matrnr", rec.MatrNr),
			slog.Any("groups", merged[idx].Groups))
	}

	result, err := New(merged...)
	if err != nil {
		return Roster{}, err
	}
	slog.Info("Merge finished", slog.Int("union_count", result.Len()))
	return result, nil
}

// Difference returns copies of the records in a whose matriculation number
// does not appear in b.
func Difference(a, b Roster) (Roster, error) {
	var diff []domain.StudentRecord
	for _, rec := range a.records {
		if !b.Contains(rec.MatrNr) {
			diff = append(diff, rec.Copy())
		}
	}
	slog.Info("Computed dataset difference",
		slog.Int("left_count", a.Len()),
		slog.Int("right_count", b.Len()),
		slog.Int("diff_count", len(diff)))
	return New(diff...)
}
