package specification

import "gorm.io/gorm"

// ByEmployeeID filters actors by their public identifier (e.g. "EMP042").
type ByEmployeeID struct {
	EmployeeID string
}

func (s ByEmployeeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeID)
}

// ByEmail filters actors by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
