package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rosterctl/internal/errors"
)

func testScheme(t *testing.T) GradingScheme {
	t.Helper()
	return GradingScheme{Assignments: []AssignmentScheme{
		{
			Name:  "Assignment 1",
			Total: 24,
			Exercises: []Exercise{
				{Name: "Exercise 1", Total: 10, Criteria: []Criterion{
					{Label: "compiles", Points: 4},
					{Label: "correct output", Points: 6},
				}},
				{Name: "Exercise 2", Total: 14, Criteria: []Criterion{
					{Label: "design", Points: 8},
					{Label: "documentation", Points: 4},
					{Label: "late style fixes", Points: -2},
				}},
			},
		},
	}}
}

func TestGradingScheme_Validate(t *testing.T) {
	scheme := testScheme(t)
	assert.NoError(t, scheme.Validate())
}

func TestGradingScheme_Validate_NegativePointsCountAbsolute(t *testing.T) {
	// Exercise 2 declares 14 = 8 + 4 + |-2|; the deduction criterion counts
	// with its absolute value.
	scheme := testScheme(t)
	require.NoError(t, scheme.Validate())

	scheme.Assignments[0].Exercises[1].Criteria[2].Points = -4
	assert.ErrorIs(t, scheme.Validate(), apperrors.ErrSchemeInvalid)
}

func TestGradingScheme_Validate_ExerciseSumMismatch(t *testing.T) {
	scheme := testScheme(t)
	scheme.Assignments[0].Exercises[0].Total = 11

	err := scheme.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchemeInvalid)
	assert.Contains(t, err.Error(), "Exercise 1")
}

func TestGradingScheme_Validate_AssignmentSumMismatch(t *testing.T) {
	scheme := testScheme(t)
	scheme.Assignments[0].Total = 30

	err := scheme.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchemeInvalid)
	assert.Contains(t, err.Error(), "Assignment 1")
}

func TestGradingScheme_Assignment(t *testing.T) {
	scheme := testScheme(t)

	a, ok := scheme.Assignment("Assignment 1")
	require.True(t, ok)
	assert.Equal(t, 24, a.Total)
	assert.Equal(t, 5, a.CriterionCount())

	_, ok = scheme.Assignment("Assignment 9")
	assert.False(t, ok)
}
