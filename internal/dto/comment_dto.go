package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	NoteId   uuid.UUID `json:"-"`
	Content  string    `json:"content"`
	AuthorId string    `json:"authorId"`
}

type CommentResponse struct {
	Id        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	NoteId    uuid.UUID    `json:"noteId"`
	AuthorId  uuid.UUID    `json:"authorId"`
	Author    *UserSummary `json:"author,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
