package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-records-api/internal/models"
)

const addressColumns = `address_id, student_id, street, city, province, postal_code, country`

// AddressReader is the read surface handed to guards. Inside a guarded mutation it is bound
// to the mutating transaction.
type AddressReader interface {
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	CountByStudent(ctx context.Context, studentID int64) (int, error)
}

// GuardFunc inspects state before a guarded mutation; a non-nil error aborts the transaction
// and is returned unchanged.
type GuardFunc func(ctx context.Context, reader AddressReader) error

// AddressRepository manages persistence for address records.
type AddressRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewAddressRepository constructs an AddressRepository.
func NewAddressRepository(db *sqlx.DB, observer QueryObserver) *AddressRepository {
	return &AddressRepository{db: db, observer: observerOrNop(observer)}
}

// List returns every address ordered by id.
func (r *AddressRepository) List(ctx context.Context) ([]models.Address, error) {
	defer timed(r.observer, "addresses.list")()
	query := `SELECT ` + addressColumns + ` FROM addresses ORDER BY address_id`
	var addresses []models.Address
	if err := r.db.SelectContext(ctx, &addresses, query); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// ListByStudent returns the addresses of one student.
func (r *AddressRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Address, error) {
	defer timed(r.observer, "addresses.list_by_student")()
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE student_id = $1 ORDER BY address_id`
	var addresses []models.Address
	if err := r.db.SelectContext(ctx, &addresses, query, studentID); err != nil {
		return nil, fmt.Errorf("list student addresses: %w", err)
	}
	return addresses, nil
}

// FindByID fetches an address, returning nil when it does not exist.
func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	defer timed(r.observer, "addresses.find")()
	return findAddress(ctx, r.db, id)
}

// CountByStudent counts the addresses owned by a student.
func (r *AddressRepository) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	defer timed(r.observer, "addresses.count")()
	return countAddresses(ctx, r.db, studentID)
}

// Create inserts an address and fills in its id. A dangling student_id surfaces as the
// driver's foreign-key error.
func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	defer timed(r.observer, "addresses.create")()
	if err := insertAddress(ctx, r.db, address); err != nil {
		return fmt.Errorf("create address: %w", err)
	}
	return nil
}

// Update overwrites every column of the address after guard approves. It reports false
// when the address does not exist.
func (r *AddressRepository) Update(ctx context.Context, address *models.Address, guard GuardFunc) (bool, error) {
	defer timed(r.observer, "addresses.update")()
	return r.guarded(ctx, address.ID, guard, func(tx *sqlx.Tx) (bool, error) {
		const query = `UPDATE addresses SET student_id = :student_id, street = :street, city = :city, province = :province,
        postal_code = :postal_code, country = :country WHERE address_id = :address_id`
		res, err := tx.NamedExecContext(ctx, query, address)
		if err != nil {
			return false, fmt.Errorf("update address: %w", err)
		}
		return affected(res, "update address")
	})
}

// Delete removes the address after guard approves. It reports false when the address does not exist.
func (r *AddressRepository) Delete(ctx context.Context, id int64, guard GuardFunc) (bool, error) {
	defer timed(r.observer, "addresses.delete")()
	return r.guarded(ctx, id, guard, func(tx *sqlx.Tx) (bool, error) {
		res, err := tx.ExecContext(ctx, `DELETE FROM addresses WHERE address_id = $1`, id)
		if err != nil {
			return false, fmt.Errorf("delete address: %w", err)
		}
		return affected(res, "delete address")
	})
}

// guarded runs guard and mutate in one transaction. The address row and its owning student
// row are locked first, so concurrent guarded mutations on the same student serialize and the
// guard's reads stay valid until commit. FOR NO KEY UPDATE on the student leaves inserts of
// new addresses (which only take KEY SHARE) unblocked.
func (r *AddressRepository) guarded(ctx context.Context, id int64, guard GuardFunc, mutate func(tx *sqlx.Tx) (bool, error)) (done bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin address transaction: %w", err)
	}
	defer func() {
		if err != nil || !done {
			_ = tx.Rollback()
		}
	}()

	var studentID int64
	found := true
	if err = tx.GetContext(ctx, &studentID, `SELECT student_id FROM addresses WHERE address_id = $1 FOR UPDATE`, id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("lock address: %w", err)
		}
		err = nil
		found = false
	}
	if found {
		if _, err = tx.ExecContext(ctx, `SELECT 1 FROM students WHERE student_id = $1 FOR NO KEY UPDATE`, studentID); err != nil {
			return false, fmt.Errorf("lock student: %w", err)
		}
	}

	if guard != nil {
		if err = guard(ctx, txReader{tx: tx}); err != nil {
			return false, err
		}
	}
	if !found {
		return false, nil
	}

	if done, err = mutate(tx); err != nil || !done {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit address: %w", err)
	}
	return true, nil
}

// txReader serves guard reads from inside the mutating transaction.
type txReader struct {
	tx *sqlx.Tx
}

func (t txReader) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	return findAddress(ctx, t.tx, id)
}

func (t txReader) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	return countAddresses(ctx, t.tx, studentID)
}

func findAddress(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE address_id = $1`
	var address models.Address
	if err := sqlx.GetContext(ctx, q, &address, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return &address, nil
}

func countAddresses(ctx context.Context, q sqlx.QueryerContext, studentID int64) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, `SELECT COUNT(*) FROM addresses WHERE student_id = $1`, studentID); err != nil {
		return 0, fmt.Errorf("count addresses: %w", err)
	}
	return count, nil
}

func insertAddress(ctx context.Context, q sqlx.QueryerContext, address *models.Address) error {
	const query = `INSERT INTO addresses (student_id, street, city, province, postal_code, country)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING address_id`
	return sqlx.GetContext(ctx, q, &address.ID, query,
		address.StudentID, address.Street, address.City, address.Province, address.PostalCode, address.Country)
}
