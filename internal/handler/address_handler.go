package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records-api/internal/dto"
	"github.com/noah-isme/student-records-api/internal/validation"
	"github.com/noah-isme/student-records-api/pkg/response"
)

type addressService interface {
	List(ctx context.Context) ([]dto.AddressDTO, error)
	Get(ctx context.Context, id int64) (*dto.AddressDTO, error)
	ListByStudent(ctx context.Context, studentID int64) ([]dto.AddressDTO, error)
	ListForStudent(ctx context.Context, studentID int64) ([]dto.AddressDTO, bool, error)
	Create(ctx context.Context, req dto.AddressRequest) (*dto.AddressDTO, error)
	CreateForStudent(ctx context.Context, studentID int64, req dto.AddressRequest) (*dto.AddressDTO, error)
	Update(ctx context.Context, id int64, req dto.AddressRequest) (*dto.AddressDTO, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteForStudent(ctx context.Context, studentID, id int64) (bool, error)
}

// AddressHandler exposes address endpoints, both standalone and nested under a student.
type AddressHandler struct {
	addresses addressService
	validator *validation.Validator
	prefix    string
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses addressService, validator *validation.Validator, prefix string) *AddressHandler {
	return &AddressHandler{addresses: addresses, validator: validator, prefix: prefix}
}

// List godoc
// @Summary List addresses
// @Tags Addresses
// @Produce json
// @Success 200 {array} dto.AddressDTO
// @Router /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, addresses)
}

// Get godoc
// @Summary Get address
// @Tags Addresses
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} dto.AddressDTO
// @Failure 404 {object} response.Envelope
// @Router /addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	address, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if address == nil {
		response.NotFound(c, "address not found")
		return
	}
	response.JSON(c, http.StatusOK, address)
}

// ListByStudent godoc
// @Summary List addresses of a student
// @Description Unknown students yield an empty list.
// @Tags Addresses
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {array} dto.AddressDTO
// @Router /addresses/student/{studentId} [get]
func (h *AddressHandler) ListByStudent(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	addresses, err := h.addresses.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, addresses)
}

// Create godoc
// @Summary Create address
// @Tags Addresses
// @Accept json
// @Produce json
// @Param payload body dto.AddressRequest true "Address payload"
// @Success 201 {object} dto.AddressDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	if rejectInvalid(c, h.validator.ValidateAddress(req, true)) {
		return
	}
	address, err := h.addresses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, locationOf(h.prefix, "addresses", address.AddressID), address)
}

// Update godoc
// @Summary Update address
// @Description Moving a student's last address to another student is rejected.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param id path int true "Address ID"
// @Param payload body dto.AddressRequest true "Address payload"
// @Success 200 {object} dto.AddressDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	if rejectInvalid(c, h.validator.ValidateAddress(req, true)) {
		return
	}
	address, err := h.addresses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if address == nil {
		response.NotFound(c, "address not found")
		return
	}
	response.JSON(c, http.StatusOK, address)
}

// Delete godoc
// @Summary Delete address
// @Tags Addresses
// @Param id path int true "Address ID"
// @Success 204
// @Failure 400 {object} response.Envelope "Last address of the student"
// @Failure 404 {object} response.Envelope
// @Router /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.addresses.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "address not found")
		return
	}
	response.NoContent(c)
}

// ListForStudent godoc
// @Summary List addresses of a student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {array} dto.AddressDTO
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/addresses [get]
func (h *AddressHandler) ListForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	addresses, found, err := h.addresses.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		response.NotFound(c, "student not found")
		return
	}
	response.JSON(c, http.StatusOK, addresses)
}

// CreateForStudent godoc
// @Summary Add an address to a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.AddressRequest true "Address payload"
// @Success 201 {object} dto.AddressDTO
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/addresses [post]
func (h *AddressHandler) CreateForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	if rejectInvalid(c, h.validator.ValidateAddress(req, false)) {
		return
	}
	address, err := h.addresses.CreateForStudent(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if address == nil {
		response.NotFound(c, "student not found")
		return
	}
	response.Created(c, locationOf(h.prefix, "addresses", address.AddressID), address)
}

// DeleteForStudent godoc
// @Summary Remove an address from a student
// @Tags Students
// @Param id path int true "Student ID"
// @Param addressId path int true "Address ID"
// @Success 204
// @Failure 400 {object} response.Envelope "Last address of the student"
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/addresses/{addressId} [delete]
func (h *AddressHandler) DeleteForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "addressId")
	if !ok {
		return
	}
	deleted, err := h.addresses.DeleteForStudent(c.Request.Context(), studentID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "address not found")
		return
	}
	response.NoContent(c)
}
