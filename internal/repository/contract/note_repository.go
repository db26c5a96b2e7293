package contract

import (
	"context"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	// Create inserts the note and links note.Categories by id.
	Create(ctx context.Context, note *entity.Note) error
	// Update saves scalar columns and replaces the whole category set with note.Categories.
	Update(ctx context.Context, note *entity.Note) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) error
	// Delete unlinks categories and removes the note row. Comments are not touched.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
}
