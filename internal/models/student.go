package models

// Student is the persisted student row.
type Student struct {
	ID        int64  `db:"student_id"`
	StudentNo string `db:"student_no"`
	Name      string `db:"name"`
	Active    bool   `db:"active"`
}

// StudentWithAddresses is the aggregate written when a student is registered.
type StudentWithAddresses struct {
	Student
	Addresses []Address
}
