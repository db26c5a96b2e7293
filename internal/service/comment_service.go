package service

import (
	"context"
	"strings"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/repository/scope"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"

	"github.com/google/uuid"
)

type ICommentService interface {
	List(ctx context.Context, noteId uuid.UUID) ([]dto.CommentResponse, error)
	Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

type commentService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewCommentService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) ICommentService {
	return &commentService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// List returns an empty list for a note that does not exist.
func (s *commentService) List(ctx context.Context, noteId uuid.UUID) ([]dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	comments, err := uow.CommentRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: noteId},
		specification.ScopeOf(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to list comments", err)
	}

	res := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentResponse(c))
	}
	return res, nil
}

func (s *commentService) Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" || strings.TrimSpace(req.AuthorId) == "" {
		return nil, apperror.NewValidationError("Content and authorId are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.NoteId})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note not found")
	}

	authorId, err := uuid.Parse(strings.TrimSpace(req.AuthorId))
	if err != nil {
		return nil, apperror.NewValidationError("Author does not exist")
	}
	if err := requireSelfOrAdmin(actor, authorId); err != nil {
		return nil, err
	}

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: authorId})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load author", err)
	}
	if author == nil {
		return nil, apperror.NewValidationError("Author does not exist")
	}

	comment := &entity.Comment{
		Id:       uuid.New(),
		Content:  content,
		NoteId:   note.Id,
		AuthorId: author.Id,
	}
	if err := uow.CommentRepository().Create(ctx, comment); err != nil {
		if apperror.Is(err, apperror.KindForeignKey) {
			// The note was deleted between the check and the insert
			return nil, apperror.NewNotFoundError("Note not found")
		}
		return nil, apperror.NewInternalError("Failed to create comment", err)
	}
	comment.Author = author

	s.publisher.Publish(ctx, events.New(events.CommentCreated, map[string]interface{}{
		"comment_id": comment.Id.String(),
		"note_id":    note.Id.String(),
		"user_id":    author.Id.String(),
	}))

	res := toCommentResponse(comment)
	return &res, nil
}
