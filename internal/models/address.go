package models

// Address is the persisted address row. StudentID references exactly one student.
type Address struct {
	ID         int64  `db:"address_id"`
	StudentID  int64  `db:"student_id"`
	Street     string `db:"street"`
	City       string `db:"city"`
	Province   string `db:"province"`
	PostalCode string `db:"postal_code"`
	Country    string `db:"country"`
}
