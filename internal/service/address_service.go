package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/internal/repository"
	"github.com/noah-isme/student-records-api/internal/validation"
	"github.com/noah-isme/student-records-api/pkg/database"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
)

type addressRepository interface {
	List(ctx context.Context) ([]models.Address, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Address, error)
	FindByID(ctx context.Context, id int64) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address, guard repository.GuardFunc) (bool, error)
	Delete(ctx context.Context, id int64, guard repository.GuardFunc) (bool, error)
}

type studentExistence interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

var errForeignAddress = errors.New("address belongs to another student")

// AddressService handles address use-cases and keeps every student with at least one address.
type AddressService struct {
	repo     addressRepository
	students studentExistence
	guard    validation.AddressGuard
	logger   *zap.Logger
}

// NewAddressService constructs the address service.
func NewAddressService(repo addressRepository, students studentExistence, logger *zap.Logger) *AddressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressService{repo: repo, students: students, logger: logger}
}

// List returns every address.
func (s *AddressService) List(ctx context.Context) ([]dto.AddressDTO, error) {
	addresses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list addresses")
	}
	return dto.NewAddressDTOs(addresses), nil
}

// Get returns a single address or nil when it does not exist.
func (s *AddressService) Get(ctx context.Context, id int64) (*dto.AddressDTO, error) {
	address, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load address")
	}
	if address == nil {
		return nil, nil
	}
	out := dto.NewAddressDTO(*address)
	return &out, nil
}

// ListByStudent returns the addresses of studentID; an unknown student yields an empty list.
func (s *AddressService) ListByStudent(ctx context.Context, studentID int64) ([]dto.AddressDTO, error) {
	addresses, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student addresses")
	}
	return dto.NewAddressDTOs(addresses), nil
}

// ListForStudent is ListByStudent for the nested routes: found is false when the student
// does not exist.
func (s *AddressService) ListForStudent(ctx context.Context, studentID int64) (addresses []dto.AddressDTO, found bool, err error) {
	exists, err := s.studentExists(ctx, studentID)
	if err != nil || !exists {
		return nil, false, err
	}
	addresses, err = s.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	return addresses, true, nil
}

// Create stores an address for req.StudentID. A student id that does not exist is a 404.
func (s *AddressService) Create(ctx context.Context, req dto.AddressRequest) (*dto.AddressDTO, error) {
	address := req.Model(req.StudentID)
	if err := s.repo.Create(ctx, &address); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to create address")
	}
	s.logger.Info("address created", zap.Int64("address_id", address.ID), zap.Int64("student_id", address.StudentID))
	out := dto.NewAddressDTO(address)
	return &out, nil
}

// CreateForStudent stores an address owned by studentID, ignoring any student id in the body.
// It returns nil when the student does not exist.
func (s *AddressService) CreateForStudent(ctx context.Context, studentID int64, req dto.AddressRequest) (*dto.AddressDTO, error) {
	exists, err := s.studentExists(ctx, studentID)
	if err != nil || !exists {
		return nil, err
	}
	req.StudentID = studentID
	created, err := s.Create(ctx, req)
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
		// deleted between the existence check and the insert
		return nil, nil
	}
	return created, err
}

// Update replaces every field of address id, including its owner. Moving the last address
// of a student elsewhere is rejected like deleting it. Returns nil when the address does
// not exist.
func (s *AddressService) Update(ctx context.Context, id int64, req dto.AddressRequest) (*dto.AddressDTO, error) {
	address := req.Model(req.StudentID)
	address.ID = id
	updated, err := s.repo.Update(ctx, &address, func(ctx context.Context, reader repository.AddressReader) error {
		return s.guard.CheckReassign(ctx, reader, id, address.StudentID)
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, s.guardError(err, id, "failed to update address")
	}
	if !updated {
		return nil, nil
	}
	s.logger.Info("address updated", zap.Int64("address_id", id), zap.Int64("student_id", address.StudentID))
	out := dto.NewAddressDTO(address)
	return &out, nil
}

// Delete removes address id unless it is its student's last one. It reports false when the
// address does not exist.
func (s *AddressService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, func(ctx context.Context, reader repository.AddressReader) error {
		return s.guard.CheckDelete(ctx, reader, id)
	})
	if err != nil {
		return false, s.guardError(err, id, "failed to delete address")
	}
	if deleted {
		s.logger.Info("address deleted", zap.Int64("address_id", id))
	}
	return deleted, nil
}

// DeleteForStudent is Delete scoped to studentID: an address owned by someone else counts
// as not found.
func (s *AddressService) DeleteForStudent(ctx context.Context, studentID, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, func(ctx context.Context, reader repository.AddressReader) error {
		address, err := reader.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if address != nil && address.StudentID != studentID {
			return errForeignAddress
		}
		return s.guard.CheckDelete(ctx, reader, id)
	})
	if errors.Is(err, errForeignAddress) {
		return false, nil
	}
	if err != nil {
		return false, s.guardError(err, id, "failed to delete address")
	}
	if deleted {
		s.logger.Info("address deleted", zap.Int64("address_id", id), zap.Int64("student_id", studentID))
	}
	return deleted, nil
}

func (s *AddressService) studentExists(ctx context.Context, studentID int64) (bool, error) {
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return false, appErrors.Internal(err, "failed to load student")
	}
	return exists, nil
}

// guardError turns a guard rejection into a 400 carrying the violations, anything else into a 500.
func (s *AddressService) guardError(err error, id int64, message string) error {
	var violations validation.Violations
	if errors.As(err, &violations) {
		s.logger.Info("address mutation rejected", zap.Int64("address_id", id), zap.String("reason", violations.Error()))
		return appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, validation.MsgLastAddress), err, violations)
	}
	return appErrors.Internal(err, message)
}
