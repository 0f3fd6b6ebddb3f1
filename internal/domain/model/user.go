package model

import "time"

// Role is the access role of an account.
type Role string

const (
	RoleStudent    Role = "student"
	RoleCrew       Role = "crew"
	RoleManagement Role = "management"
)

// IsStaff reports whether role may operate canteen orders.
func (r Role) IsStaff() bool {
	return r == RoleCrew || r == RoleManagement
}

// User represents a student or staff account.
type User struct {
	UserID       string
	Login        string
	Name         string
	PasswordHash string
	Role         Role
	CanteenID    string
	CreatedAt    time.Time
}

// Actor identifies who performs an operation.
type Actor struct {
	UserID    string
	Role      Role
	CanteenID string
}

// Principal builds the actor for an authenticated user.
func (u User) Principal() Actor {
	return Actor{UserID: u.UserID, Role: u.Role, CanteenID: u.CanteenID}
}
