package dto

import "github.com/noah-isme/student-records-api/internal/models"

// AddressDTO is the external shape of an address.
type AddressDTO struct {
	AddressID  int64  `json:"addressId"`
	StudentID  int64  `json:"studentId"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// AddressRequest carries address fields for create and update. StudentID is taken from the
// body on the /addresses routes and from the path on nested /students/{id}/addresses routes.
type AddressRequest struct {
	AddressID  int64  `json:"addressId,omitempty"`
	StudentID  int64  `json:"studentId,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Model converts the request into a persisted row owned by studentID.
func (r AddressRequest) Model(studentID int64) models.Address {
	return models.Address{
		StudentID:  studentID,
		Street:     r.Street,
		City:       r.City,
		Province:   r.Province,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// NewAddressDTO maps a persisted address to its transfer object.
func NewAddressDTO(a models.Address) AddressDTO {
	return AddressDTO{
		AddressID:  a.ID,
		StudentID:  a.StudentID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// NewAddressDTOs maps a slice, always returning a non-nil slice.
func NewAddressDTOs(addresses []models.Address) []AddressDTO {
	out := make([]AddressDTO, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, NewAddressDTO(a))
	}
	return out
}
