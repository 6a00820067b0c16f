// Package models contains the domain types shared by the stores, the services
// and the HTTP layer: accounts and their role profiles, jobs, applications,
// placements and the admin-managed user directory.
package models

import "time"

// Role is one of the four platform roles.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
	RoleOfficer  Role = "officer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEmployer, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// Account is a registered identity. PasswordHash never leaves the identity store.
type Account struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	PasswordHash string      `json:"passwordHash"`
	Role         Role        `json:"role"`
	RoleProfile  RoleProfile `json:"roleProfile"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Profile is the public view of an Account held by a session.
type Profile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Role        Role        `json:"role"`
	RoleProfile RoleProfile `json:"roleProfile"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Public strips the password hash.
func (a Account) Public() Profile {
	return Profile{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		Role:        a.Role,
		RoleProfile: a.RoleProfile.Clone(),
		CreatedAt:   a.CreatedAt,
	}
}
