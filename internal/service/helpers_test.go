package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCombineDateTime(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-09-15")
	clock, _ := time.Parse("15:04", "14:45")

	got := CombineDateTime(date, clock)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.September, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 45, got.Minute())
	assert.Equal(t, 0, got.Second())
}

func TestCombineDateTimeIgnoresClockDate(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-01-01")
	clock := time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC)

	got := CombineDateTime(date, clock)

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.Equal(t, 0, got.Second())
}
