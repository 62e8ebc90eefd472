package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterctl/internal/domain"
	apperrors "rosterctl/internal/errors"
)

func student(matrnr int, first, last string, groups ...int) domain.StudentRecord {
	return domain.StudentRecord{
		MatrNr:    matrnr,
		Groups:    groups,
		LastName:  last,
		FirstName: first,
		Degree:    "Computer Science",
		RegDate:   time.Date(2014, 10, 18, 12, 0, 0, 0, time.UTC),
		Email:     first + "." + last + "@example.org",
	}
}

func mustRoster(t *testing.T, records ...domain.StudentRecord) Roster {
	t.Helper()
	r, err := New(records...)
	require.NoError(t, err)
	return r
}

func TestNew_CopiesRecords(t *testing.T) {
	rec := student(1, "Max", "Mustermann", 0, 2)
	r := mustRoster(t, rec)

	// Mutating the input after construction must not leak into the roster.
	rec.Groups[0] = 42
	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, got.Groups)
}

func TestNew_RejectsInvalidRecord(t *testing.T) {
	bad := student(1, "Max", "Mustermann")
	bad.Email = "nope"

	_, err := New(bad)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.StudentRecord
		wantErr error
	}{
		{
			name:    "empty",
			records: nil,
			wantErr: nil,
		},
		{
			name: "distinct records",
			records: []domain.StudentRecord{
				student(1, "Max", "Mustermann", 1),
				student(2, "Erika", "Musterfrau", 2),
			},
			wantErr: nil,
		},
		{
			name: "duplicate matriculation number",
			records: []domain.StudentRecord{
				student(1, "Max", "Mustermann", 1),
				student(1, "Erika", "Musterfrau", 2),
			},
			wantErr: apperrors.ErrDuplicateKey,
		},
		{
			name: "duplicate derived wikiname",
			records: []domain.StudentRecord{
				student(1, "Max", "Mustermann", 1),
				student(2, "MAX", "mustermann", 2),
			},
			wantErr: apperrors.ErrDuplicateKey,
		},
		{
			name: "more than one real group",
			records: []domain.StudentRecord{
				student(1, "Max", "Mustermann", 0, 1, 2),
			},
			wantErr: apperrors.ErrGroupConstraint,
		},
		{
			name: "group zero plus one real group is fine",
			records: []domain.StudentRecord{
				student(1, "Max", "Mustermann", 0, 3),
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheck_OverrideBeatsDerivation(t *testing.T) {
	a := student(1, "Max", "Mustermann", 1)
	b := student(2, "Max", "Mustermann", 2)
	b.WikinameOverride = "MaxMustermannII"

	assert.NoError(t, Check([]domain.StudentRecord{a, b}))
}

func TestNewMerging_FoldsDuplicateMatrNr(t *testing.T) {
	a := student(1, "Max", "Mustermann", 0)
	b := student(1, "Max", "Mustermann", 3)

	r, err := NewMerging(a, b)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Len())
	got, _ := r.Get(1)
	assert.Equal(t, []int{0, 3}, got.Groups)
}

func TestSortedByMatrNr(t *testing.T) {
	r := mustRoster(t,
		student(3, "Carla", "Cc", 1),
		student(1, "Anna", "Aa", 1),
		student(2, "Bert", "Bb", 2),
	)

	sorted := r.SortedByMatrNr()
	require.Len(t, sorted, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{sorted[0].MatrNr, sorted[1].MatrNr, sorted[2].MatrNr})
}

func TestSortedByWikiname(t *testing.T) {
	r := mustRoster(t,
		student(1, "Zoe", "Zz", 1),
		student(2, "Anna", "Aa", 1),
	)

	sorted := r.SortedByWikiname()
	assert.Equal(t, "AnnaAa", sorted[0].Wikiname())
	assert.Equal(t, "ZoeZz", sorted[1].Wikiname())
}

func TestGroups(t *testing.T) {
	r := mustRoster(t,
		student(1, "Anna", "Aa", 0, 2),
		student(2, "Bert", "Bb", 0),
		student(3, "Carla", "Cc", 1),
	)

	assert.Equal(t, []int{0, 1, 2}, r.Groups())
}

func TestLatestRegistration(t *testing.T) {
	a := student(1, "Anna", "Aa", 1)
	b := student(2, "Bert", "Bb", 1)
	b.RegDate = a.RegDate.Add(48 * time.Hour)

	r := mustRoster(t, a, b)
	latest, err := r.LatestRegistration()
	require.NoError(t, err)
	assert.Equal(t, b.RegDate, latest)

	_, err = Roster{}.LatestRegistration()
	assert.Error(t, err)
}
