package service

import (
	"context"
	"strings"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/scope"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"
	"personal-notes-be/pkg/notefilter"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, query *dto.NoteListQuery) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NoteDetailResponse, error)
	Update(ctx context.Context, actor *dto.SessionUser, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, actor *dto.SessionUser, id uuid.UUID) error
	SetRating(ctx context.Context, actor *dto.SessionUser, id uuid.UUID, req *dto.SetRatingRequest) (*dto.NoteDetailResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *noteService) List(ctx context.Context, query *dto.NoteListQuery) ([]*dto.NoteResponse, error) {
	criteria, err := buildCriteria(query)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.WithAuthor{},
		specification.WithCategories{},
		specification.ScopeOf(scope.OrderByUpdatedDesc),
	)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to list notes", err)
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n))
	}

	if criteria.ActiveCount() == 0 {
		return res, nil
	}
	return notefilter.Apply(res, criteria, noteRecord), nil
}

func (s *noteService) Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	missing := missingFields(map[string]string{
		"title":     req.Title,
		"content":   req.Content,
		"eventDate": req.EventDate,
		"authorId":  req.AuthorId,
		"province":  req.Province,
	}, "title", "content", "eventDate", "authorId", "province")
	if len(missing) > 0 {
		return nil, apperror.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid eventDate").WithDetail(err.Error())
	}

	authorId, err := uuid.Parse(strings.TrimSpace(req.AuthorId))
	if err != nil {
		return nil, apperror.NewForeignKeyError("Author does not exist")
	}
	if err := requireSelfOrAdmin(actor, authorId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: authorId})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load author", err)
	}
	if author == nil {
		return nil, apperror.NewForeignKeyError("Author does not exist")
	}

	categories, err := resolveCategories(ctx, uow.CategoryRepository(), req.CategoryIds, apperror.NewForeignKeyError)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		Id:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		EventDate:    &eventDate,
		Tags:         submittedList(req.Tags),
		Province:     strings.TrimSpace(req.Province),
		PhoneNumbers: submittedList(req.PhoneNumbers),
		IsArchived:   req.IsArchived,
		IsPublished:  req.IsPublished,
		AuthorId:     author.Id,
		Categories:   categories,
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, noteWriteError(err, apperror.NewForeignKeyError)
	}
	note.Author = author

	s.publisher.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{
		"note_id": note.Id.String(),
		"title":   note.Title,
		"user_id": actor.Id.String(),
	}))

	return toNoteResponse(note), nil
}

func (s *noteService) Get(ctx context.Context, id uuid.UUID) (*dto.NoteDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := findNoteDetail(ctx, uow.NoteRepository(), id)
	if err != nil {
		return nil, err
	}
	return toNoteDetailResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, actor *dto.SessionUser, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewInternalError("Failed to begin transaction", err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note not found")
	}
	if err := requireNoteOwner(actor, note); err != nil {
		return nil, err
	}

	missing := missingFields(map[string]string{
		"title":     req.Title,
		"content":   req.Content,
		"eventDate": req.EventDate,
		"province":  req.Province,
	}, "title", "content", "eventDate", "province")
	if len(missing) > 0 {
		return nil, apperror.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid eventDate").WithDetail(err.Error())
	}

	categories, err := resolveCategories(ctx, uow.CategoryRepository(), req.CategoryIds, apperror.NewValidationError)
	if err != nil {
		return nil, err
	}

	note.Title = strings.TrimSpace(req.Title)
	note.Content = req.Content
	note.EventDate = &eventDate
	note.Province = strings.TrimSpace(req.Province)
	note.Tags = submittedList(req.Tags)
	note.PhoneNumbers = submittedList(req.PhoneNumbers)
	note.Categories = categories
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}
	if req.IsPublished != nil {
		note.IsPublished = *req.IsPublished
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, noteWriteError(err, apperror.NewValidationError)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.NewInternalError("Failed to commit note update", err)
	}

	updated, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: note.Id},
		specification.WithAuthor{},
		specification.WithCategories{},
	)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to reload note", err)
	}
	if updated == nil {
		// Deleted right after our commit
		return nil, apperror.NewNotFoundError("Note not found")
	}

	s.publisher.Publish(ctx, events.New(events.NoteUpdated, map[string]interface{}{
		"note_id": note.Id.String(),
		"title":   note.Title,
		"user_id": actor.Id.String(),
	}))

	return toNoteResponse(updated), nil
}

// Delete removes the note's comments first, then the note, in one transaction.
func (s *noteService) Delete(ctx context.Context, actor *dto.SessionUser, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.NewInternalError("Failed to begin transaction", err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.NewInternalError("Failed to load note", err)
	}
	if note == nil {
		return apperror.NewNotFoundError("Note not found")
	}
	if err := requireNoteOwner(actor, note); err != nil {
		return err
	}

	if err := uow.CommentRepository().DeleteByNoteId(ctx, id); err != nil {
		return apperror.NewInternalError("Failed to delete note comments", err)
	}
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return noteWriteError(err, apperror.NewValidationError)
	}
	if err := uow.Commit(); err != nil {
		return apperror.NewInternalError("Failed to commit note deletion", err)
	}

	s.publisher.Publish(ctx, events.New(events.NoteDeleted, map[string]interface{}{
		"note_id": id.String(),
		"title":   note.Title,
		"user_id": actor.Id.String(),
	}))
	return nil
}

func (s *noteService) SetRating(ctx context.Context, actor *dto.SessionUser, id uuid.UUID, req *dto.SetRatingRequest) (*dto.NoteDetailResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if req.Rating == nil || *req.Rating < entity.MinRating || *req.Rating > entity.MaxRating {
		return nil, apperror.NewValidationError("Rating must be an integer between 0 and 5")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note not found")
	}
	if err := requireNoteOwner(actor, note); err != nil {
		return nil, err
	}

	if err := uow.NoteRepository().UpdateRating(ctx, id, *req.Rating); err != nil {
		return nil, noteWriteError(err, apperror.NewValidationError)
	}

	rated, err := findNoteDetail(ctx, uow.NoteRepository(), id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.NoteRated, map[string]interface{}{
		"note_id": id.String(),
		"rating":  *req.Rating,
		"user_id": actor.Id.String(),
	}))

	return toNoteDetailResponse(rated), nil
}

func findNoteDetail(ctx context.Context, notes contract.NoteRepository, id uuid.UUID) (*entity.Note, error) {
	note, err := notes.FindOne(ctx,
		specification.ByID{ID: id},
		specification.WithAuthor{},
		specification.WithCategories{},
		specification.WithComments{},
	)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load note", err)
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note not found")
	}
	return note, nil
}

// resolveCategories loads every referenced category or fails with refErr.
func resolveCategories(
	ctx context.Context,
	categories contract.CategoryRepository,
	raw []string,
	refErr func(string) *apperror.Error,
) ([]*entity.Category, error) {
	ids, ok := parseIds(raw)
	if !ok {
		return nil, refErr("Category does not exist")
	}
	if len(ids) == 0 {
		return []*entity.Category{}, nil
	}

	found, err := categories.FindAll(ctx, specification.ByIDs{IDs: ids}, specification.ScopeOf(scope.OrderByNameAsc))
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load categories", err)
	}
	if len(found) != len(ids) {
		return nil, refErr("One or more categories do not exist")
	}
	return found, nil
}

// noteWriteError maps storage failures; refErr decides how a dangling
// reference is reported by the calling operation.
func noteWriteError(err error, refErr func(string) *apperror.Error) error {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return apperror.NewNotFoundError("Note not found")
	case apperror.KindForeignKey:
		return refErr("Referenced author or category does not exist")
	case apperror.KindConflict:
		return apperror.NewConflictError("Note already exists")
	default:
		return apperror.NewInternalError("Failed to save note", err)
	}
}

func buildCriteria(q *dto.NoteListQuery) (notefilter.Criteria, error) {
	if q == nil {
		return notefilter.Criteria{}, nil
	}

	c := notefilter.Criteria{
		Title:      q.Title,
		Content:    q.Content,
		Phone:      q.Phone,
		Categories: cleanList(q.Categories),
		Tags:       cleanList(q.Tags),
		Provinces:  cleanList(q.Provinces),
	}

	if strings.TrimSpace(q.From) != "" {
		from, err := parseEventDate(q.From)
		if err != nil {
			return c, apperror.NewValidationError("Invalid from date")
		}
		c.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := parseEventDate(q.To)
		if err != nil {
			return c, apperror.NewValidationError("Invalid to date")
		}
		c.To = &to
	}

	archive, err := notefilter.ParseArchiveStatus(q.Archive)
	if err != nil {
		return c, apperror.NewValidationError("Invalid archive filter").WithDetail(err.Error())
	}
	publish, err := notefilter.ParsePublishStatus(q.Publish)
	if err != nil {
		return c, apperror.NewValidationError("Invalid publish filter").WithDetail(err.Error())
	}
	c.Archive = archive
	c.Publish = publish

	return c, nil
}

func noteRecord(n *dto.NoteResponse) notefilter.Record {
	categories := make([]string, 0, len(n.Categories))
	for _, c := range n.Categories {
		categories = append(categories, c.Name)
	}
	return notefilter.Record{
		Title:        n.Title,
		Content:      n.Content,
		PhoneNumbers: n.PhoneNumbers,
		EventDate:    n.EventDate,
		Categories:   categories,
		Tags:         n.Tags,
		Province:     n.Province,
		IsArchived:   n.IsArchived,
		IsPublished:  n.IsPublished,
		UpdatedAt:    n.UpdatedAt,
	}
}
