package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(" \t "))
	assert.False(t, IsEmpty("abc"))
	assert.False(t, IsEmpty(" abc "))
}

func TestExceedsLength(t *testing.T) {
	assert.False(t, ExceedsLength("Física", 6))
	assert.True(t, ExceedsLength("Física I", 6))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "v7", input: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", want: true},
		{name: "v7 uppercase", input: "0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", want: true},
		{name: "v1", input: "123e4567-e89b-12d3-a456-426614174000", want: false},
		{name: "v4", input: "9b2f1c52-0d8e-4a63-9d0c-51f1f8c4a0e7", want: false},
		{name: "missing dashes", input: "0188d0f27b8c7b4a8a2b6b8b8b8b8b8b", want: false},
		{name: "urn form", input: "urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", want: false},
		{name: "bad hex", input: "g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUUID(tt.input))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-08-18")
	require.True(t, ok)
	assert.Equal(t, 18, date.Day())

	for _, s := range []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	for _, s := range []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456789Z"} {
		_, ok := IsValidDateTime(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"2024-01-15", "2024-01-15 10:30:00", "yesterday", ""} {
		_, ok := IsValidDateTime(s)
		assert.False(t, ok, s)
	}
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("THEORY", []string{"THEORY", "PRACTICAL"}))
	assert.False(t, IsInSlice("theory", []string{"THEORY", "PRACTICAL"}))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("email", "invalid")
	errs.Add("name", "required")

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "email: invalid; name: required", err.Error())

	var collected ValidationErrors
	require.ErrorAs(t, err, &collected)
	assert.Equal(t, map[string]string{"email": "invalid", "name": "required"}, collected.ToMap())
}
