package dataprocessing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterctl/internal/domain"
	"rosterctl/internal/roster"
)

func gradeImportRoster(t *testing.T) roster.Roster {
	t.Helper()
	r, err := roster.New(
		domain.StudentRecord{
			MatrNr: 1234567, Groups: []int{3}, LastName: "Mustermann", FirstName: "Max",
			Email: "max@example.org", RegDate: time.Date(2014, 10, 18, 12, 0, 0, 0, time.UTC),
		},
		domain.StudentRecord{
			MatrNr: 7654321, Groups: []int{3}, LastName: "Musterfrau", FirstName: "Erika",
			Email: "erika@example.org", RegDate: time.Date(2014, 10, 19, 12, 0, 0, 0, time.UTC),
		},
	)
	require.NoError(t, err)
	return r
}

func TestImportGrades(t *testing.T) {
	input := "\ufeff" + `"Group","Matriculation number","First name","Total points","Final grade"
"","","","",""
"3","1234567","Max","87","1"
"3","7654321","Erika","55","=IF(P4<50;""5"";""4"")"
`

	updated, err := ImportGrades(strings.NewReader(input), gradeImportRoster(t))
	require.NoError(t, err)

	max, ok := updated.Get(1234567)
	require.True(t, ok)
	assert.Equal(t, 1, max.Grade)

	// unevaluated formula cells stay untouched
	erika, ok := updated.Get(7654321)
	require.True(t, ok)
	assert.Equal(t, 0, erika.Grade)
}

func TestImportGrades_MissingColumns(t *testing.T) {
	input := "\"Group\",\"First name\"\n\"3\",\"Max\"\n"

	_, err := ImportGrades(strings.NewReader(input), gradeImportRoster(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Final grade")
}

func TestImportGrades_UnknownStudent(t *testing.T) {
	input := `"Matriculation number","Final grade"
"9999999","2"
`

	_, err := ImportGrades(strings.NewReader(input), gradeImportRoster(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestImportGrades_InvalidGrade(t *testing.T) {
	input := `"Matriculation number","Final grade"
"1234567","6"
`

	_, err := ImportGrades(strings.NewReader(input), gradeImportRoster(t))
	assert.Error(t, err)
}
