package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

func TestResolveScope(t *testing.T) {
	scope, err := ResolveScope(models.RoleAdmin, "admin-1", "")
	require.NoError(t, err)
	assert.True(t, scope.Unrestricted())
	assert.True(t, scope.Allows("fac-9"))

	scope, err = ResolveScope(models.RoleHOD, "hod-1", " fac-2 ")
	require.NoError(t, err)
	assert.True(t, scope.Allows("fac-2"))
	assert.False(t, scope.Allows("fac-3"))

	scope, err = ResolveScope(models.RoleFaculty, "fac-1", "fac-2")
	require.NoError(t, err)
	assert.Equal(t, "fac-1", scope.FacultyID, "faculty callers are pinned to themselves")
	assert.False(t, scope.Allows("fac-2"))

	_, err = ResolveScope(models.RoleFaculty, "", "")
	assert.ErrorIs(t, err, ErrMissingCaller)

	_, err = ResolveScope(models.UserRole("STUDENT"), "s-1", "")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestScoped(t *testing.T) {
	records := []models.AttendanceRecord{{ID: "1", FacultyID: "f1"}, {ID: "2", FacultyID: "f2"}, {ID: "3", FacultyID: "f1"}}
	assert.Len(t, Scoped(records, Scope{}, AttendanceFaculty), 3)

	kept := Scoped(records, Scope{FacultyID: "f1"}, AttendanceFaculty)
	require.Len(t, kept, 2)
	assert.Equal(t, "1", kept[0].ID)
	assert.Equal(t, "3", kept[1].ID)
}
