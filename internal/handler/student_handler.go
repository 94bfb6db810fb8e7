package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/validation"
	"github.com/noah-isme/student-records-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]dto.StudentDTO, error)
	Get(ctx context.Context, id int64) (*dto.StudentDTO, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentDTO, error)
	Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentDTO, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students  studentService
	validator *validation.Validator
	prefix    string
}

// NewStudentHandler constructs StudentHandler. prefix is the API mount point used in Location headers.
func NewStudentHandler(students studentService, validator *validation.Validator, prefix string) *StudentHandler {
	return &StudentHandler{students: students, validator: validator, prefix: prefix}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {array} dto.StudentDTO
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentDTO
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if student == nil {
		response.NotFound(c, "student not found")
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student with addresses
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} dto.StudentDTO
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	if rejectInvalid(c, h.validator.ValidateCreateStudent(req)) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, locationOf(h.prefix, "students", student.StudentID), student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Student payload"
// @Success 200 {object} dto.StudentDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	if rejectInvalid(c, h.validator.ValidateUpdateStudent(req)) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if student == nil {
		response.NotFound(c, "student not found")
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student and its addresses
// @Tags Students
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "student not found")
		return
	}
	response.NoContent(c)
}
