package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-records-api/internal/models"
)

const studentColumns = `student_id, student_no, name, active`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB, observer QueryObserver) *StudentRepository {
	return &StudentRepository{db: db, observer: observerOrNop(observer)}
}

// List returns every student ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	defer timed(r.observer, "students.list")()
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY student_id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student, returning nil when it does not exist.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	defer timed(r.observer, "students.find")()
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Exists reports whether a student with id is present.
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer timed(r.observer, "students.exists")()
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check student: %w", err)
	}
	return exists, nil
}

// CreateWithAddresses inserts the student and all of its addresses in one transaction,
// filling in the generated ids.
func (r *StudentRepository) CreateWithAddresses(ctx context.Context, student *models.StudentWithAddresses) (err error) {
	defer timed(r.observer, "students.create")()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertStudent = `INSERT INTO students (student_no, name, active) VALUES ($1, $2, $3) RETURNING student_id`
	if err = tx.GetContext(ctx, &student.ID, insertStudent, student.StudentNo, student.Name, student.Active); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	for i := range student.Addresses {
		address := &student.Addresses[i]
		address.StudentID = student.ID
		if err = insertAddress(ctx, tx, address); err != nil {
			return fmt.Errorf("insert student address %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit student: %w", err)
	}
	return nil
}

// Update overwrites student_no, name and active. It reports false when no row matched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (bool, error) {
	defer timed(r.observer, "students.update")()
	const query = `UPDATE students SET student_no = :student_no, name = :name, active = :active WHERE student_id = :student_id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return false, fmt.Errorf("update student: %w", err)
	}
	return affected(res, "update student")
}

// Delete removes a student; addresses go with it through ON DELETE CASCADE.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	defer timed(r.observer, "students.delete")()
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return affected(res, "delete student")
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n > 0, nil
}
