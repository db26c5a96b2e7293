package unitofwork

import (
	"context"

	"personal-notes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CategoryRepository() contract.CategoryRepository
	NoteRepository() contract.NoteRepository
	CommentRepository() contract.CommentRepository
}
