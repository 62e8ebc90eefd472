package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterctl/internal/config"
	"rosterctl/internal/domain"
	"rosterctl/internal/errors"
	"rosterctl/internal/exporter"
	"rosterctl/internal/roster"
	"rosterctl/internal/xmlstore"
)

func testApp(t *testing.T) *app {
	t.Helper()
	paths := config.NewPaths(config.PathsConfig{
		DataDir:             t.TempDir(),
		StudentsFile:        "students.xml",
		MetadataFile:        "metadata.xml",
		GradingFile:         "GradingPoints.txt",
		SpreadsheetTemplate: "group{group}-{assignment}.csv",
	})
	return &app{
		paths:    paths,
		store:    xmlstore.NewStore(xmlstore.ConfirmAll),
		exporter: exporter.New(paths, xmlstore.ConfirmAll),
	}
}

func seedStudents(t *testing.T, a *app) {
	t.Helper()
	r, err := roster.New(
		domain.StudentRecord{
			MatrNr: 1234567, Groups: []int{3}, LastName: "Mustermann", FirstName: "Max",
			Email: "max@example.org", RegDate: time.Date(2014, 10, 18, 12, 0, 0, 0, time.UTC),
		},
		domain.StudentRecord{
			MatrNr: 7654321, Groups: []int{5}, LastName: "Musterfrau", FirstName: "Erika",
			Email: "erika@example.org", RegDate: time.Date(2014, 10, 19, 12, 0, 0, 0, time.UTC),
		},
	)
	require.NoError(t, err)
	require.NoError(t, a.store.StoreRoster(a.paths.StudentsPath(), r))
}

func TestParseGroupList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []int
	}{
		{name: "space separated", value: "0 3", want: []int{0, 3}},
		{name: "comma separated", value: "1,2,5", want: []int{1, 2, 5}},
		{name: "single", value: "4", want: []int{4}},
		{name: "empty", value: "", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGroupList(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGroupList_Invalid(t *testing.T) {
	_, err := parseGroupList("3 four")
	assert.Error(t, err)
}

func TestStudentsDelete(t *testing.T) {
	a := testApp(t)
	seedStudents(t, a)

	require.NoError(t, a.studentsDelete([]string{"-matriculation-number", "1234567"}))

	r, err := a.store.LoadRoster(a.paths.StudentsPath())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.False(t, r.Contains(1234567))
	assert.True(t, r.Contains(7654321), "other records stay untouched")
}

func TestStudentsDelete_UnknownStudent(t *testing.T) {
	a := testApp(t)
	seedStudents(t, a)

	err := a.studentsDelete([]string{"-matriculation-number", "9999999"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestStudentsRead_BadDateFilter(t *testing.T) {
	a := testApp(t)

	err := a.studentsRead([]string{"-newer", "soon"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrParseFailed)
}

func TestRun_UnknownCommand(t *testing.T) {
	a := &app{}

	err := a.run([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")

	err = a.run([]string{"students", "frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown students subcommand")
}
