package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records-api/internal/models"
)

var addressRowColumns = []string{"address_id", "student_id", "street", "city", "province", "postal_code", "country"}

const (
	lockAddressSQL = "SELECT student_id FROM addresses WHERE address_id = $1 FOR UPDATE"
	lockStudentSQL = "SELECT 1 FROM students WHERE student_id = $1 FOR NO KEY UPDATE"
	findAddressSQL = "SELECT address_id, student_id, street, city, province, postal_code, country FROM addresses WHERE address_id = $1"
	countSQL       = "SELECT COUNT(*) FROM addresses WHERE student_id = $1"
)

// lastAddressGuard rejects when the address is the only one of its student.
func lastAddressGuard(id int64) GuardFunc {
	return func(ctx context.Context, reader AddressReader) error {
		address, err := reader.FindByID(ctx, id)
		if err != nil || address == nil {
			return err
		}
		count, err := reader.CountByStudent(ctx, address.StudentID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return errLast
		}
		return nil
	}
}

var errLast = errors.New("last address")

func TestAddressRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM addresses WHERE student_id = $1 ORDER BY address_id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(addressRowColumns).
			AddRow(1, 1, "123 Main St", "New York", "NY", "10001", "USA").
			AddRow(2, 1, "456 Oak Ave", "Boston", "MA", "02101", "USA"))

	addresses, err := repo.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "02101", addresses[1].PostalCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO addresses (student_id, street, city, province, postal_code, country)")).
		WithArgs(int64(2), "1 Elm", "Chicago", "IL", "60601", "USA").
		WillReturnRows(sqlmock.NewRows([]string{"address_id"}).AddRow(30))

	address := &models.Address{StudentID: 2, Street: "1 Elm", City: "Chicago", Province: "IL", PostalCode: "60601", Country: "USA"}
	require.NoError(t, repo.Create(context.Background(), address))
	assert.Equal(t, int64(30), address.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryDeleteGuardedSuccess(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAddressSQL)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(lockStudentSQL)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(findAddressSQL)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(addressRowColumns).AddRow(2, 1, "456 Oak Ave", "Boston", "MA", "02101", "USA"))
	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM addresses WHERE address_id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 2, lastAddressGuard(2))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryDeleteGuardRejectsAndRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAddressSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta(lockStudentSQL)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(findAddressSQL)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(addressRowColumns).AddRow(7, 4, "147 Birch St", "Portland", "OR", "97201", "USA"))
	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	deleted, err := repo.Delete(context.Background(), 7, lastAddressGuard(7))
	assert.ErrorIs(t, err, errLast)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAddressSQL)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(findAddressSQL)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	deleted, err := repo.Delete(context.Background(), 404, lastAddressGuard(404))
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAddressRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAddressSQL)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(lockStudentSQL)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE addresses SET student_id = ?")).
		WithArgs(int64(2), "1 New St", "Chicago", "IL", "60601", "USA", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), &models.Address{
		ID: 3, StudentID: 2, Street: "1 New St", City: "Chicago", Province: "IL", PostalCode: "60601", Country: "USA",
	}, nil)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
