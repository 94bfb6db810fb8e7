//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/internal/repository"
	"github.com/noah-isme/student-records-api/internal/validation"
	"github.com/noah-isme/student-records-api/pkg/database"
)

type PostgresRepositorySuite struct {
	suite.Suite
	container testcontainers.Container
	db        *sqlx.DB
	students  *repository.StudentRepository
	addresses *repository.AddressRepository
	guard     validation.AddressGuard
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("student_records"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.db, err = sqlx.Connect("postgres", dsn)
	s.Require().NoError(err)

	applied, err := database.NewMigrator(s.db, zap.NewNop()).Up(ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(applied)

	s.students = repository.NewStudentRepository(s.db, nil)
	s.addresses = repository.NewAddressRepository(s.db, nil)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	_, err := s.db.Exec(`TRUNCATE addresses, students RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *PostgresRepositorySuite) createStudent(no string, addressCount int) *models.StudentWithAddresses {
	student := &models.StudentWithAddresses{Student: models.Student{StudentNo: no, Name: "Student " + no, Active: true}}
	for i := 0; i < addressCount; i++ {
		student.Addresses = append(student.Addresses, models.Address{
			Street: "Street", City: "City", Province: "PR", PostalCode: "12345", Country: "USA",
		})
	}
	s.Require().NoError(s.students.CreateWithAddresses(context.Background(), student))
	return student
}

func (s *PostgresRepositorySuite) deleteGuard(id int64) repository.GuardFunc {
	return func(ctx context.Context, reader repository.AddressReader) error {
		return s.guard.CheckDelete(ctx, reader, id)
	}
}

func (s *PostgresRepositorySuite) TestMigrationsAreIdempotent() {
	applied, err := database.NewMigrator(s.db, zap.NewNop()).Up(context.Background())
	s.Require().NoError(err)
	s.Empty(applied)
}

// TestConcurrentDeletesKeepOneAddress races deletes of every address of one student;
// exactly one address must survive.
func (s *PostgresRepositorySuite) TestConcurrentDeletesKeepOneAddress() {
	ctx := context.Background()
	student := s.createStudent("S100", 6)

	var wg sync.WaitGroup
	var deleted, rejected atomic.Int32
	for _, address := range student.Addresses {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			ok, err := s.addresses.Delete(ctx, id, s.deleteGuard(id))
			var violations validation.Violations
			switch {
			case errors.As(err, &violations):
				rejected.Add(1)
			case err != nil:
				s.T().Errorf("delete %d: %v", id, err)
			case ok:
				deleted.Add(1)
			}
		}(address.ID)
	}
	wg.Wait()

	s.Equal(int32(5), deleted.Load())
	s.Equal(int32(1), rejected.Load())
	count, err := s.addresses.CountByStudent(ctx, student.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresRepositorySuite) TestConcurrentReassignKeepsSourceAddress() {
	ctx := context.Background()
	source := s.createStudent("S200", 2)
	target := s.createStudent("S201", 1)

	var wg sync.WaitGroup
	for _, address := range source.Addresses {
		wg.Add(1)
		go func(a models.Address) {
			defer wg.Done()
			a.StudentID = target.ID
			_, _ = s.addresses.Update(ctx, &a, func(ctx context.Context, reader repository.AddressReader) error {
				return s.guard.CheckReassign(ctx, reader, a.ID, target.ID)
			})
		}(address)
	}
	wg.Wait()

	count, err := s.addresses.CountByStudent(ctx, source.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresRepositorySuite) TestDeleteStudentCascades() {
	ctx := context.Background()
	student := s.createStudent("S300", 3)

	ok, err := s.students.Delete(ctx, student.ID)
	s.Require().NoError(err)
	s.True(ok)

	addresses, err := s.addresses.ListByStudent(ctx, student.ID)
	s.Require().NoError(err)
	s.Empty(addresses)
	address, err := s.addresses.FindByID(ctx, student.Addresses[0].ID)
	s.Require().NoError(err)
	s.Nil(address)
}

func (s *PostgresRepositorySuite) TestConstraintErrors() {
	ctx := context.Background()
	s.createStudent("S400", 1)

	err := s.students.CreateWithAddresses(ctx, &models.StudentWithAddresses{
		Student:   models.Student{StudentNo: "S400", Name: "Duplicate"},
		Addresses: []models.Address{{Street: "a", City: "b", Province: "c", PostalCode: "d", Country: "e"}},
	})
	s.True(database.IsUniqueViolation(err), "got %v", err)

	err = s.addresses.Create(ctx, &models.Address{StudentID: 9999, Street: "a", City: "b", Province: "c", PostalCode: "d", Country: "e"})
	s.True(database.IsForeignKeyViolation(err), "got %v", err)
	s.Equal("addresses_student_id_fkey", database.ConstraintName(err))
}

func (s *PostgresRepositorySuite) TestCreateRollsBackStudentWhenAddressFails() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tooLong := make([]byte, 300)
	for i := range tooLong {
		tooLong[i] = 'x'
	}
	err := s.students.CreateWithAddresses(ctx, &models.StudentWithAddresses{
		Student:   models.Student{StudentNo: "S500", Name: "Rollback"},
		Addresses: []models.Address{{Street: string(tooLong), City: "b", Province: "c", PostalCode: "d", Country: "e"}},
	})
	s.Require().Error(err)

	students, err := s.students.List(ctx)
	s.Require().NoError(err)
	s.Empty(students)
}
