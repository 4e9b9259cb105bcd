package domain

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSupervisor  Role = "supervisor"
	RoleCollections Role = "collections"
)

// User email is write-once. Inactive users cannot log in.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// Actor identifies who performs an operation. It is passed explicitly into
// every mutating service call, never read from ambient state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
