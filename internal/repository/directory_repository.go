package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-reporting-api/internal/models"
)

// DirectoryRepository resolves student and faculty identities.
type DirectoryRepository struct {
	db *sqlx.DB
}

// NewDirectoryRepository constructs a DirectoryRepository.
func NewDirectoryRepository(db *sqlx.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// AllStudents lists every student. Ordering is left to the report builders.
func (r *DirectoryRepository) AllStudents(ctx context.Context) ([]models.StudentIdentity, error) {
	const query = `SELECT id, name, email, roll_number, department FROM students ORDER BY id ASC`
	var students []models.StudentIdentity
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// AllFaculty lists every faculty member.
func (r *DirectoryRepository) AllFaculty(ctx context.Context) ([]models.FacultyIdentity, error) {
	const query = `SELECT id, name, email, department FROM faculty ORDER BY name ASC, id ASC`
	var faculty []models.FacultyIdentity
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return faculty, nil
}

// FindStudent fetches a student by id. Returns sql.ErrNoRows when absent.
func (r *DirectoryRepository) FindStudent(ctx context.Context, id string) (*models.StudentIdentity, error) {
	const query = `SELECT id, name, email, roll_number, department FROM students WHERE id = $1`
	var student models.StudentIdentity
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindFaculty fetches a faculty member by id. Returns sql.ErrNoRows when absent.
func (r *DirectoryRepository) FindFaculty(ctx context.Context, id string) (*models.FacultyIdentity, error) {
	const query = `SELECT id, name, email, department FROM faculty WHERE id = $1`
	var faculty models.FacultyIdentity
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		return nil, err
	}
	return &faculty, nil
}
