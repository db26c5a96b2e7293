package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNoteRequest keeps eventDate and ids as strings so the service can
// report bad values as validation or reference errors instead of decode failures.
type CreateNoteRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	EventDate    string   `json:"eventDate"`
	AuthorId     string   `json:"authorId"`
	Province     string   `json:"province"`
	CategoryIds  []string `json:"categoryIds"`
	Tags         []string `json:"tags"`
	PhoneNumbers []string `json:"phoneNumbers"`
	IsArchived   bool     `json:"isArchived"`
	IsPublished  bool     `json:"isPublished"`
}

// UpdateNoteRequest replaces the category set; absent flags keep their stored value.
type UpdateNoteRequest struct {
	Id           uuid.UUID `json:"-"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	EventDate    string    `json:"eventDate"`
	Province     string    `json:"province"`
	CategoryIds  []string  `json:"categoryIds"`
	Tags         []string  `json:"tags"`
	PhoneNumbers []string  `json:"phoneNumbers"`
	IsArchived   *bool     `json:"isArchived"`
	IsPublished  *bool     `json:"isPublished"`
}

// SetRatingRequest uses a pointer so a missing rating is distinguishable from 0.
type SetRatingRequest struct {
	Rating *int `json:"rating" validate:"required,min=0,max=5"`
}

type NoteResponse struct {
	Id           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	EventDate    *time.Time        `json:"eventDate"`
	Tags         []string          `json:"tags"`
	Province     string            `json:"province"`
	PhoneNumbers []string          `json:"phoneNumbers"`
	IsArchived   bool              `json:"isArchived"`
	IsPublished  bool              `json:"isPublished"`
	Rating       int               `json:"rating"`
	AuthorId     uuid.UUID         `json:"authorId"`
	Author       *UserSummary      `json:"author,omitempty"`
	Categories   []CategorySummary `json:"categories"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type NoteDetailResponse struct {
	NoteResponse
	Comments []CommentResponse `json:"comments"`
}

// NoteListQuery carries the optional in-memory filters of GET /notes.
type NoteListQuery struct {
	Title      string
	Content    string
	Phone      string
	From       string
	To         string
	Categories []string
	Tags       []string
	Provinces  []string
	Archive    string
	Publish    string
}
