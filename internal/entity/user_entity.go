package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

type User struct {
	Id           uuid.UUID
	Username     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the reduced, password-free view of a user.
type Identity struct {
	Id       uuid.UUID
	Username string
	Role     UserRole
}

func (u *User) Identity() Identity {
	return Identity{Id: u.Id, Username: u.Username, Role: u.Role}
}

func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}
