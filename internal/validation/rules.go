package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/student-records-api/internal/dto"
)

// Limits accepted at the API boundary. The storage columns are wider.
const (
	MaxStudentNoLength  = 8
	MaxNameLength       = 100
	MaxStreetLength     = 50
	MaxCityLength       = 40
	MaxProvinceLength   = 30
	MaxPostalCodeLength = 7
	MaxCountryLength    = 30
)

// rule pairs a validator tag with the message reported when the tag fails.
type rule struct {
	tag     string
	message string
}

func required(message string) rule {
	return rule{tag: "notblank", message: message}
}

func maxLength(n int, message string) rule {
	return rule{tag: fmt.Sprintf("max=%d", n), message: message}
}

var (
	studentNoRules = []rule{
		required("Student number is required"),
		maxLength(MaxStudentNoLength, "Student number cannot exceed 8 characters"),
	}
	nameRules = []rule{
		required("Name is required"),
		maxLength(MaxNameLength, "Name cannot exceed 100 characters"),
	}
	addressListRules = []rule{
		{tag: "required", message: "Addresses are required"},
		{tag: "min=1", message: "At least one address is required"},
	}
	studentIDRules = []rule{
		{tag: "gt=0", message: "Student id is required"},
	}
	streetRules = []rule{
		required("Street is required"),
		maxLength(MaxStreetLength, "Street cannot exceed 50 characters"),
	}
	cityRules = []rule{
		required("City is required"),
		maxLength(MaxCityLength, "City cannot exceed 40 characters"),
	}
	provinceRules = []rule{
		required("Province is required"),
		maxLength(MaxProvinceLength, "Province cannot exceed 30 characters"),
	}
	postalCodeRules = []rule{
		required("Postal code is required"),
		maxLength(MaxPostalCodeLength, "Postal code cannot exceed 7 characters"),
	}
	countryRules = []rule{
		required("Country is required"),
		maxLength(MaxCountryLength, "Country cannot exceed 30 characters"),
	}
)

// Validator evaluates the request rule tables. Every field is checked and every rule of a
// field runs, so a single field can report more than one violation.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator on top of validate, registering the notblank tag.
func New(validate *validator.Validate) (*Validator, error) {
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.RegisterValidation("notblank", notBlank); err != nil {
		return nil, fmt.Errorf("register notblank: %w", err)
	}
	return &Validator{validate: validate}, nil
}

// MustNew is New for wiring code with a fresh validator instance.
func MustNew() *Validator {
	v, err := New(validator.New())
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateCreateStudent checks a registration request including every nested address.
func (v *Validator) ValidateCreateStudent(req dto.CreateStudentRequest) Violations {
	var out Violations
	v.check(&out, "studentNo", req.StudentNo, studentNoRules)
	v.check(&out, "name", req.Name, nameRules)
	v.check(&out, "addresses", req.Addresses, addressListRules)
	for i, address := range req.Addresses {
		v.checkAddressFields(&out, fmt.Sprintf("addresses[%d].", i), address)
	}
	return out
}

// ValidateUpdateStudent checks the replaceable student fields.
func (v *Validator) ValidateUpdateStudent(req dto.UpdateStudentRequest) Violations {
	var out Violations
	v.check(&out, "studentNo", req.StudentNo, studentNoRules)
	v.check(&out, "name", req.Name, nameRules)
	return out
}

// ValidateAddress checks a standalone address payload. When requireStudent is set the body
// must name the owning student.
func (v *Validator) ValidateAddress(req dto.AddressRequest, requireStudent bool) Violations {
	var out Violations
	if requireStudent {
		v.check(&out, "studentId", req.StudentID, studentIDRules)
	}
	v.checkAddressFields(&out, "", req)
	return out
}

func (v *Validator) checkAddressFields(out *Violations, prefix string, address dto.AddressRequest) {
	v.check(out, prefix+"street", address.Street, streetRules)
	v.check(out, prefix+"city", address.City, cityRules)
	v.check(out, prefix+"province", address.Province, provinceRules)
	v.check(out, prefix+"postalCode", address.PostalCode, postalCodeRules)
	v.check(out, prefix+"country", address.Country, countryRules)
}

func (v *Validator) check(out *Violations, field string, value interface{}, rules []rule) {
	for _, r := range rules {
		if err := v.validate.Var(value, r.tag); err != nil {
			*out = append(*out, Violation{Field: field, Message: r.message})
		}
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
