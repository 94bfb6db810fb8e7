package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/models"
	"github.com/noah-isme/student-records-api/pkg/database"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	CreateWithAddresses(ctx context.Context, student *models.StudentWithAddresses) error
	Update(ctx context.Context, student *models.Student) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// StudentService handles student use-cases. Requests reach it already validated.
type StudentService struct {
	repo   studentRepository
	logger *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, logger: logger}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]dto.StudentDTO, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	return dto.NewStudentDTOs(students), nil
}

// Get returns a single student or nil when it does not exist.
func (s *StudentService) Get(ctx context.Context, id int64) (*dto.StudentDTO, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load student")
	}
	if student == nil {
		return nil, nil
	}
	out := dto.NewStudentDTO(*student)
	return &out, nil
}

// Create stores the student and its addresses atomically. The returned DTO carries the
// generated id but not the addresses.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentDTO, error) {
	student := &models.StudentWithAddresses{
		Student: models.Student{
			StudentNo: req.StudentNo,
			Name:      req.Name,
			Active:    req.Active,
		},
		Addresses: make([]models.Address, 0, len(req.Addresses)),
	}
	for _, address := range req.Addresses {
		student.Addresses = append(student.Addresses, address.Model(0))
	}

	if err := s.repo.CreateWithAddresses(ctx, student); err != nil {
		return nil, studentWriteError(err, "failed to create student")
	}
	s.logger.Info("student created",
		zap.Int64("student_id", student.ID),
		zap.String("student_no", student.StudentNo),
		zap.Int("addresses", len(student.Addresses)),
	)
	out := dto.NewStudentDTO(student.Student)
	return &out, nil
}

// Update replaces studentNo, name and active of student id. It returns nil when the student
// does not exist. Addresses are not touched.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentDTO, error) {
	student := models.Student{
		ID:        id,
		StudentNo: req.StudentNo,
		Name:      req.Name,
		Active:    req.Active,
	}
	updated, err := s.repo.Update(ctx, &student)
	if err != nil {
		return nil, studentWriteError(err, "failed to update student")
	}
	if !updated {
		return nil, nil
	}
	s.logger.Info("student updated", zap.Int64("student_id", id))
	out := dto.NewStudentDTO(student)
	return &out, nil
}

// Delete removes the student and, by cascade, its addresses. It reports false when the
// student does not exist.
func (s *StudentService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, appErrors.Internal(err, "failed to delete student")
	}
	if deleted {
		s.logger.Info("student deleted", zap.Int64("student_id", id))
	}
	return deleted, nil
}

func studentWriteError(err error, message string) error {
	if database.IsUniqueViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "student number already used")
	}
	return appErrors.Internal(err, message)
}
