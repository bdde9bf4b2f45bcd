package model

// Doctor is a doctor profile. Read-only to the engine.
type Doctor struct {
	Base
	Name           string `json:"name" db:"name"`
	Department     string `json:"department" db:"department"`
	Specialisation string `json:"specialisation" db:"specialisation"`
	RegNumber      string `json:"reg_number" db:"reg_number"`
	Active         bool   `json:"active" db:"active"`
}

// CreateDoctorRequest is the admin profile-entry payload.
type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Specialisation string `json:"specialisation"`
	RegNumber      string `json:"reg_number"`
}
