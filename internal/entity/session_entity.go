package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind an issued token. Deleting it
// revokes the token even before it expires.
type Session struct {
	Id        string    `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Identity() Identity {
	return Identity{Id: s.UserId, Username: s.Username, Role: s.Role}
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
