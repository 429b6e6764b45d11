package model

// Role identifies a user's position in the care workflow.
type Role string

const (
	RoleDoctor    Role = "doctor"
	RolePatient   Role = "patient"
	RoleAssistant Role = "assistant"
	RoleManager   Role = "manager"
	RoleNone      Role = "none"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RolePatient, RoleAssistant, RoleManager, RoleNone:
		return true
	}
	return false
}

// User represents a system user. IsSuperuser is a capability separate from
// the role and is checked before any role-specific rule.
type User struct {
	Base
	Email          string `json:"email" db:"email"`
	Password       string `json:"password,omitempty" db:"-"`
	HashedPassword string `json:"-" db:"hashed_password"`
	FullName       string `json:"full_name" db:"full_name"`
	Role           Role   `json:"role" db:"role"`
	IsSuperuser    bool   `json:"is_superuser" db:"is_superuser"`
	IsActive       bool   `json:"is_active" db:"is_active"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role" binding:"omitempty,role"`
	IsSuperuser bool   `json:"is_superuser"`
}

// RegisterRequest represents open self-registration parameters
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// UpdateUserRequest represents user update parameters
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	FullName *string `json:"full_name"`
	Role     *Role   `json:"role" binding:"omitempty,role"`
	IsActive *bool   `json:"is_active"`
}
