package analytics

import (
	"errors"
	"strings"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

var (
	// ErrUnknownRole is returned for roles the resolver does not recognise.
	ErrUnknownRole = errors.New("unknown caller role")
	// ErrMissingCaller is returned when a faculty caller has no id to pin the scope to.
	ErrMissingCaller = errors.New("faculty caller id is required")
)

// Scope restricts which faculty's records a report may see. An empty FacultyID sees everything.
type Scope struct {
	FacultyID string
}

// ResolveScope turns a caller role into a Scope. Faculty callers are pinned to their own id whatever
// facultyID they pass; admins and HODs see everything unless they filter on a faculty.
func ResolveScope(role models.UserRole, callerID, facultyID string) (Scope, error) {
	switch role {
	case models.RoleFaculty:
		callerID = strings.TrimSpace(callerID)
		if callerID == "" {
			return Scope{}, ErrMissingCaller
		}
		return Scope{FacultyID: callerID}, nil
	case models.RoleAdmin, models.RoleHOD:
		return Scope{FacultyID: strings.TrimSpace(facultyID)}, nil
	default:
		return Scope{}, ErrUnknownRole
	}
}

// Unrestricted reports whether the scope accepts every faculty.
func (s Scope) Unrestricted() bool {
	return s.FacultyID == ""
}

// Allows is the scope predicate on a record's faculty id.
func (s Scope) Allows(facultyID string) bool {
	return s.Unrestricted() || s.FacultyID == facultyID
}

// Scoped keeps the records whose faculty the scope allows.
func Scoped[T any](items []T, scope Scope, facultyOf func(T) string) []T {
	if scope.Unrestricted() {
		return items
	}
	return Filter(items, func(item T) bool { return scope.Allows(facultyOf(item)) })
}

// Faculty accessors for the record types the reports scope.
func AttendanceFaculty(r models.AttendanceRecord) string { return r.FacultyID }
func MarkFaculty(r models.MarkRecord) string             { return r.FacultyID }
func AssignmentFaculty(r models.AssignmentRow) string    { return r.AssignedBy }
func FeedbackFaculty(r models.FeedbackRecord) string     { return r.FacultyID }
func QuizFaculty(q models.Quiz) string                   { return q.CreatedBy }
