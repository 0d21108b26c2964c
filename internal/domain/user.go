package domain

import (
	"errors"
	"time"
)

// User represents a bank customer or a staff member.
type User struct {
	ID             string
	Mobile         string
	FirstName      string
	LastName       string
	HashedPassword string
	Role           Role
	Staff          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName returns the display name used in notifications and reports.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role represents a user's access level.
type Role string

const (
	// RoleBankOwner has full access, including bank and branch management.
	RoleBankOwner Role = "BANK_OWNER"

	// RoleBranchManager is staff: can manage branches and view reports.
	RoleBranchManager Role = "BRANCH_MANAGER"

	// RoleUser is a regular customer.
	RoleUser Role = "USER"
)

var validRoles = map[Role]bool{
	RoleBankOwner:     true,
	RoleBranchManager: true,
	RoleUser:          true,
}

// IsValid checks if the role is a valid role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsStaff reports whether the role may use staff endpoints.
func (r Role) IsStaff() bool {
	return r == RoleBankOwner || r == RoleBranchManager
}

// Authentication errors.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidLogin     = errors.New("mobile or password is not correct")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
