package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id           uuid.UUID
	Title        string
	Content      string
	EventDate    *time.Time
	Tags         []string
	Province     string
	PhoneNumbers []string
	IsArchived   bool
	IsPublished  bool
	Rating       int
	AuthorId     uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Loaded on demand
	Author     *User
	Categories []*Category
	Comments   []*Comment
}

const (
	MinRating = 0
	MaxRating = 5
)

func (n *Note) CategoryIds() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(n.Categories))
	for _, c := range n.Categories {
		ids = append(ids, c.Id)
	}
	return ids
}
