package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+14155552671",
		"+91 98765 43210",
		"4155552671",
		"(415) 555-2671",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "expected valid: %s", phone)
	}

	invalid := []string{
		"",
		"0123",
		"not a phone",
		"+1234567890123456", // too long
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "expected invalid: %s", phone)
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	start := time.Date(2025, 3, 10, 23, 50, 0, 0, loc)
	end := time.Date(2025, 3, 12, 0, 5, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(start, end))
	assert.Equal(t, 0, DaysBetween(start, start))
}

func TestBeginningOfMonth(t *testing.T) {
	ts := time.Date(2025, 6, 17, 14, 30, 0, 0, time.UTC)
	got := BeginningOfMonth(ts)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
