package entity

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id        uuid.UUID
	Content   string
	NoteId    uuid.UUID
	AuthorId  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *User
}
