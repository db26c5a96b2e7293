package service

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

func requireActor(actor *dto.SessionUser) error {
	if actor == nil {
		return apperror.NewUnauthorizedError("Authentication required")
	}
	return nil
}

func requireAdmin(actor *dto.SessionUser) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperror.NewForbiddenError("Administrator role required")
	}
	return nil
}

// requireSelfOrAdmin guards writes attributed to authorId.
func requireSelfOrAdmin(actor *dto.SessionUser, authorId uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Id != authorId && !actor.IsAdmin() {
		return apperror.NewForbiddenError("Cannot act on behalf of another user")
	}
	return nil
}

func requireNoteOwner(actor *dto.SessionUser, note *entity.Note) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if note.AuthorId != actor.Id && !actor.IsAdmin() {
		return apperror.NewForbiddenError("Only the author or an administrator can modify this note")
	}
	return nil
}
