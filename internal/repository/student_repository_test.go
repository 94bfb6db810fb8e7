package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

var studentRowColumns = []string{"student_id", "student_no", "name", "active"}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewStudentRepository(db, observer)

	rows := sqlmock.NewRows(studentRowColumns).
		AddRow(1, "S0001001", "Alice Johnson", true).
		AddRow(2, "S0001002", "Bob Smith", false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, student_no, name, active FROM students ORDER BY student_id")).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, int64(1), students[0].ID)
	assert.False(t, students[1].Active)
	assert.Equal(t, []string{"students.list"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE student_id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	student, err := repo.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, student)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateWithAddresses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (student_no, name, active) VALUES ($1, $2, $3) RETURNING student_id")).
		WithArgs("S001", "John Doe", true).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO addresses")).
		WithArgs(int64(11), "123 Main St", "Springfield", "IL", "12345", "USA").
		WillReturnRows(sqlmock.NewRows([]string{"address_id"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO addresses")).
		WithArgs(int64(11), "9 Side Rd", "Springfield", "IL", "12345", "USA").
		WillReturnRows(sqlmock.NewRows([]string{"address_id"}).AddRow(22))
	mock.ExpectCommit()

	student := &models.StudentWithAddresses{
		Student: models.Student{StudentNo: "S001", Name: "John Doe", Active: true},
		Addresses: []models.Address{
			{Street: "123 Main St", City: "Springfield", Province: "IL", PostalCode: "12345", Country: "USA"},
			{Street: "9 Side Rd", City: "Springfield", Province: "IL", PostalCode: "12345", Country: "USA"},
		},
	}
	require.NoError(t, repo.CreateWithAddresses(context.Background(), student))
	assert.Equal(t, int64(11), student.ID)
	assert.Equal(t, int64(21), student.Addresses[0].ID)
	assert.Equal(t, int64(11), student.Addresses[1].StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateRollsBackOnAddressFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO addresses")).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	err := repo.CreateWithAddresses(context.Background(), &models.StudentWithAddresses{
		Student:   models.Student{StudentNo: "S002", Name: "Jane"},
		Addresses: []models.Address{{Street: "x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert student address 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET student_no = ?, name = ?, active = ? WHERE student_id = ?")).
		WithArgs("S009", "Renamed", false, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
		WithArgs("S009", "Renamed", false, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Update(context.Background(), &models.Student{ID: 3, StudentNo: "S009", Name: "Renamed"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Update(context.Background(), &models.Student{ID: 404, StudentNo: "S009", Name: "Renamed"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE student_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE student_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
