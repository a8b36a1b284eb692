package models

// UserRole is fixed at login
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleDealer  UserRole = "DEALER"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleDealer
}

// User is the identity attached to a session
type User struct {
	ID    string   `json:"id"`
	Role  UserRole `json:"role"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

// LoginRequest represents a login form submission
type LoginRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
