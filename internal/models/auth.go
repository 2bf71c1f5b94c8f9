package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the caller roles the reporting API understands.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleHOD     UserRole = "HOD"
	RoleFaculty UserRole = "FACULTY"
)

// Valid reports whether the role is one the reporting API accepts.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleFaculty:
		return true
	default:
		return false
	}
}

// JWTClaims represents the access token payload issued by the auth service.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Caller is the authenticated principal a report is built for.
type Caller struct {
	ID   string
	Role UserRole
}

// Caller extracts the report caller from token claims.
func (c *JWTClaims) Caller() Caller {
	if c == nil {
		return Caller{}
	}
	return Caller{ID: c.UserID, Role: c.Role}
}
