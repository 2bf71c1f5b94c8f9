package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRepositoryStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDirectoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, roll_number, department FROM students ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "roll_number", "department"}).
			AddRow("s1", "Ana", "ana@example.com", "10", "Science").
			AddRow("s2", "Budi", "budi@example.com", nil, nil))

	students, err := repo.AllStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.NotNil(t, students[0].RollNumber)
	assert.Equal(t, "10", *students[0].RollNumber)
	assert.Nil(t, students[1].RollNumber)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1")).
		WithArgs("s9").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindStudent(context.Background(), "s9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryRepositoryFaculty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDirectoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, department FROM faculty ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "department"}).
			AddRow("f1", "Citra", "citra@example.com", "Science"))
	faculty, err := repo.AllFaculty(context.Background())
	require.NoError(t, err)
	require.Len(t, faculty, 1)

	mock.ExpectQuery(regexp.QuoteMeta("FROM faculty WHERE id = $1")).
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "department"}).
			AddRow("f1", "Citra", "citra@example.com", nil))
	found, err := repo.FindFaculty(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Citra", found.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
