package models

// StudentIdentity is the directory entry of a student.
type StudentIdentity struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	RollNumber *string `db:"roll_number" json:"rollNumber,omitempty"`
	Department *string `db:"department" json:"department,omitempty"`
}

// FacultyIdentity is the directory entry of a faculty member.
type FacultyIdentity struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	Department *string `db:"department" json:"department,omitempty"`
}
