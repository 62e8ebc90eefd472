package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStudent(t *testing.T) StudentRecord {
	t.Helper()
	return StudentRecord{
		MatrNr:    1234567,
		Groups:    []int{0, 2},
		LastName:  "Mustermann",
		FirstName: "Max",
		Degree:    "Computer Science",
		RegDate:   time.Date(2014, 10, 18, 23, 47, 6, 0, time.UTC),
		Email:     "max.mustermann@example.org",
	}
}

func TestStudentRecord_Wikiname(t *testing.T) {
	s := testStudent(t)
	assert.Equal(t, "MaxMustermann", s.Wikiname())

	s.WikinameOverride = "MaxM"
	assert.Equal(t, "MaxM", s.Wikiname(), "override must take precedence")
}

func TestStudentRecord_Copy(t *testing.T) {
	s := testStudent(t)
	c := s.Copy()

	require.Equal(t, s, c)

	// The copy must not alias the group slice.
	c.Groups[0] = 99
	assert.Equal(t, []int{0, 2}, s.Groups)
}

func TestStudentRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StudentRecord)
		wantErr bool
	}{
		{"valid", func(s *StudentRecord) {}, false},
		{"zero matrnr", func(s *StudentRecord) { s.MatrNr = 0 }, true},
		{"negative matrnr", func(s *StudentRecord) { s.MatrNr = -1 }, true},
		{"missing lastname", func(s *StudentRecord) { s.LastName = "" }, true},
		{"missing firstname", func(s *StudentRecord) { s.FirstName = "" }, true},
		{"bad email", func(s *StudentRecord) { s.Email = "not-an-email" }, true},
		{"negative group", func(s *StudentRecord) { s.Groups = []int{-1} }, true},
		{"grade out of range", func(s *StudentRecord) { s.Grade = 6 }, true},
		{"zero regdate", func(s *StudentRecord) { s.RegDate = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStudent(t)
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudentRecord_Groups(t *testing.T) {
	s := testStudent(t)

	assert.True(t, s.InGroup(0))
	assert.True(t, s.InGroup(2))
	assert.False(t, s.InGroup(1))
	assert.Equal(t, []int{2}, s.RealGroups())
}

func TestStudentRecord_WithGroups(t *testing.T) {
	s := testStudent(t)
	merged := s.WithGroups(s.Groups, []int{0, 3})

	assert.Equal(t, []int{0, 2, 3}, merged.Groups)
	assert.Equal(t, []int{0, 2}, s.Groups, "input must stay untouched")
}

func TestNormalizeGroups(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
	}{
		{"nil", nil, nil},
		{"single", []int{3}, []int{3}},
		{"unsorted with duplicates", []int{3, 0, 3, 1, 0}, []int{0, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeGroups(tt.input))
		})
	}
}
