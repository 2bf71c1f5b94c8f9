package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	r, err := NewDateRange(from, to)
	require.NoError(t, err, "same-day range is valid even when the clock time is earlier")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, r.From, r.To)

	_, err = NewDateRange(to.AddDate(0, 0, 1), to)
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2024, time.February, nil)
	assert.Equal(t, 29, r.To.Day())
	assert.True(t, r.Contains(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleFaculty.Valid())
	assert.True(t, RoleHOD.Valid())
	assert.False(t, UserRole("STUDENT").Valid())
}
