package dto

import "github.com/google/uuid"

type MessageResponse struct {
	Message string `json:"message"`
}

// SessionUser is the request-scoped identity placed in the request locals by the auth middleware.
type SessionUser struct {
	Id        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionId string    `json:"-"`
}

func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == "ADMIN"
}

type UserSummary struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
