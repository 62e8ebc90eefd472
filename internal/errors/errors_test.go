package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "message only",
			err:      New(KindValidation, "VALIDATION_FAILED", "Roster validation failed"),
			expected: "Roster validation failed",
		},
		{
			name:     "with details",
			err:      NewWithDetails(KindValidation, "DUPLICATE_KEY", "Matriculation number contained twice in dataset", 12345),
			expected: "Matriculation number contained twice in dataset: 12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Is(t *testing.T) {
	dup := DuplicateKeyError("Wikiname", "MaxMustermann")
	wrapped := fmt.Errorf("loading students.xml: %w", dup)

	assert.True(t, stderrors.Is(wrapped, ErrDuplicateKey))
	assert.False(t, stderrors.Is(wrapped, ErrGroupConstraint))
}

func TestDuplicateKeyError(t *testing.T) {
	err := DuplicateKeyError("Matriculation number", 1234567)

	require.NotNil(t, err)
	assert.Equal(t, "DUPLICATE_KEY", err.Code)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Contains(t, err.Error(), "Matriculation number")
	assert.Contains(t, err.Error(), "1234567")
}

func TestGroupConstraintError(t *testing.T) {
	err := GroupConstraintError("JohnDoe", []int{1, 2})

	assert.Equal(t, "GROUP_CONSTRAINT", err.Code)
	assert.Contains(t, err.Error(), "JohnDoe")
	assert.True(t, IsValidation(err))
}

func TestIsAbort(t *testing.T) {
	assert.True(t, IsAbort(ErrUserAbort))
	assert.True(t, IsAbort(fmt.Errorf("writing students.xml: %w", ErrUserAbort)))
	assert.False(t, IsAbort(ErrParseFailed))
	assert.False(t, IsAbort(nil))
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"duplicate key", ErrDuplicateKey, true},
		{"group constraint", GroupConstraintError("x", nil), true},
		{"scheme", SchemeError("Assignment 1", 10, 12), true},
		{"parse", ParseErrorf("bad row"), false},
		{"wrapped validation", fmt.Errorf("check: %w", ErrValidationFailed), true},
		{"plain error", stderrors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidation(tt.err))
		})
	}
}

func TestSchemeError(t *testing.T) {
	err := SchemeError("Assignment 1, Exercise 2", 9, 10)

	assert.Equal(t, "SCHEME_INVALID", err.Code)
	assert.Contains(t, err.Error(), "Assignment 1, Exercise 2")
	assert.Contains(t, err.Error(), "9 != 10")
}
