package validation

import (
	"context"
	"fmt"

	"github.com/noah-isme/student-records-api/internal/models"
)

// MsgLastAddress is reported when a mutation would leave a student without addresses.
const MsgLastAddress = "Cannot delete the student's last address. Students must have at least one address."

// AddressLookup is the read access the guard needs. Callers pass an implementation bound to
// the transaction that performs the mutation so the check and the write see the same state.
type AddressLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	CountByStudent(ctx context.Context, studentID int64) (int, error)
}

// AddressGuard enforces that every student keeps at least one address.
type AddressGuard struct{}

// CheckDelete permits deleting addressID unless it is the last address of its student.
// A missing address is permitted; the delete itself reports not found.
func (AddressGuard) CheckDelete(ctx context.Context, lookup AddressLookup, addressID int64) error {
	address, err := lookup.FindByID(ctx, addressID)
	if err != nil {
		return fmt.Errorf("load address %d: %w", addressID, err)
	}
	if address == nil {
		return nil
	}
	return checkNotLast(ctx, lookup, address)
}

// CheckReassign permits moving addressID to newStudentID unless that strips the current
// owner of its last address.
func (AddressGuard) CheckReassign(ctx context.Context, lookup AddressLookup, addressID, newStudentID int64) error {
	address, err := lookup.FindByID(ctx, addressID)
	if err != nil {
		return fmt.Errorf("load address %d: %w", addressID, err)
	}
	if address == nil || address.StudentID == newStudentID {
		return nil
	}
	return checkNotLast(ctx, lookup, address)
}

func checkNotLast(ctx context.Context, lookup AddressLookup, address *models.Address) error {
	count, err := lookup.CountByStudent(ctx, address.StudentID)
	if err != nil {
		return fmt.Errorf("count addresses of student %d: %w", address.StudentID, err)
	}
	if count > 1 {
		return nil
	}
	return Violations{{Field: "addressId", Message: MsgLastAddress}}
}
