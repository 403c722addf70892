package entity

import "time"

// Roles válidos para User. El rol determina el scope efectivo de autorización:
// admin opera con scope "all"; el resto con scope "own".
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSpecialist = "specialist"
)

// Estados de cuenta válidos para User.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
	AccountBlocked  = "blocked"
)

// User representa un usuario del back-office.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Role          string // admin, manager, specialist
	AccountStatus string // active, inactive, blocked
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
