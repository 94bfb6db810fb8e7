package dto

import "github.com/noah-isme/student-records-api/internal/models"

// StudentDTO is the external shape of a student. Addresses are fetched separately.
type StudentDTO struct {
	StudentID int64  `json:"studentId"`
	StudentNo string `json:"studentNo"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}

// CreateStudentRequest registers a student together with at least one address.
// A missing or null addresses field decodes to a nil slice, an empty array to a non-nil one.
type CreateStudentRequest struct {
	StudentNo string           `json:"studentNo"`
	Name      string           `json:"name"`
	Active    bool             `json:"active"`
	Addresses []AddressRequest `json:"addresses"`
}

// UpdateStudentRequest replaces the scalar fields of a student. StudentID in the body is ignored;
// the path identifies the record.
type UpdateStudentRequest struct {
	StudentID int64  `json:"studentId"`
	StudentNo string `json:"studentNo"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
}

// NewStudentDTO maps a persisted student to its transfer object.
func NewStudentDTO(s models.Student) StudentDTO {
	return StudentDTO{
		StudentID: s.ID,
		StudentNo: s.StudentNo,
		Name:      s.Name,
		Active:    s.Active,
	}
}

// NewStudentDTOs maps a slice, always returning a non-nil slice so empty lists encode as [].
func NewStudentDTOs(students []models.Student) []StudentDTO {
	out := make([]StudentDTO, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentDTO(s))
	}
	return out
}
