package domain

import "time"

// Role grants coarse-grained privileges to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for registered filers.
// PasswordHash never leaves the service; handlers build responses field by field.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	PlanID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
