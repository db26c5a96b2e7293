package client

import (
	"fmt"
	"time"
)

// User is the reduced identity the server hands out after login.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "ADMIN"
}

type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string
	Content   string
	NoteID    string
	AuthorID  string
	Author    *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Note struct {
	ID           string
	Title        string
	Content      string
	EventDate    *time.Time
	Tags         []string
	Province     string
	PhoneNumbers []string
	IsArchived   bool
	IsPublished  bool
	Rating       int
	AuthorID     string
	Author       *User
	Categories   []Category
	Comments     []Comment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NoteInput is the body of create and update. AuthorID is ignored on update;
// nil flags keep the stored value on update and default to false on create.
type NoteInput struct {
	Title        string
	Content      string
	EventDate    time.Time
	AuthorID     string
	Province     string
	CategoryIDs  []string
	Tags         []string
	PhoneNumbers []string
	IsArchived   *bool
	IsPublished  *bool
}

type CommentInput struct {
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

type LoginResult struct {
	Message   string
	User      User
	Token     string
	ExpiresAt time.Time
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}
