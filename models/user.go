package models

// UserRole defines allowed roles carried in access tokens
type UserRole string

const (
	RoleStaff UserRole = "staff"
)

// Staff is the single operator account configured for the shop. Its
// password hash comes from configuration, never from a backend.
type Staff struct {
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
}
