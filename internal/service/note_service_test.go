package service

import (
	"context"
	"testing"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/testutil"
	"personal-notes-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(authorId uuid.UUID, categoryIds ...uuid.UUID) *dto.CreateNoteRequest {
	ids := make([]string, 0, len(categoryIds))
	for _, id := range categoryIds {
		ids = append(ids, id.String())
	}
	return &dto.CreateNoteRequest{
		Title:        "Standup",
		Content:      "Discuss roadmap",
		EventDate:    "2024-03-10T09:30:00Z",
		AuthorId:     authorId.String(),
		Province:     "Bali",
		CategoryIds:  ids,
		Tags:         []string{"team", "weekly"},
		PhoneNumbers: []string{"+62 812 3456"},
	}
}

func TestNoteServiceCreateRoundTripsArrays(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()
	work := testutil.SeedCategory(t, f.db, "Work")

	created, err := svc.Create(ctx, actor(f.user), createRequest(f.user.Id, work.Id))
	require.NoError(t, err)
	assert.Equal(t, "ana", created.Author.Username)
	require.Len(t, created.Categories, 1)

	got, err := svc.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"team", "weekly"}, got.Tags)
	assert.Equal(t, []string{"+62 812 3456"}, got.PhoneNumbers)
	assert.Equal(t, "Work", got.Categories[0].Name)
	assert.Equal(t, 0, got.Rating)
	assert.Empty(t, got.Comments)
	require.NotNil(t, got.EventDate)
	assert.True(t, got.EventDate.Equal(time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, []string{events.NoteCreated}, f.publisher.Types())
}

func TestNoteServiceStoresListEntriesAsSubmitted(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()

	req := createRequest(f.user.Id)
	req.Tags = []string{" urgent ", "", "team"}
	req.PhoneNumbers = []string{"0812 ", ""}

	created, err := svc.Create(ctx, actor(f.user), req)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{" urgent ", "", "team"}, got.Tags)
	assert.Equal(t, []string{"0812 ", ""}, got.PhoneNumbers)

	updated, err := svc.Update(ctx, actor(f.user), &dto.UpdateNoteRequest{
		Id:           created.Id,
		Title:        "Standup",
		Content:      "Discuss roadmap",
		EventDate:    "2024-03-10",
		Province:     "Bali",
		Tags:         []string{"", " later"},
		PhoneNumbers: []string{" +62 "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", " later"}, updated.Tags)
	assert.Equal(t, []string{" +62 "}, updated.PhoneNumbers)
}

func TestNoteServiceCreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()

	tests := []struct {
		name   string
		actor  *model.User
		mutate func(r *dto.CreateNoteRequest)
		kind   apperror.Kind
	}{
		{name: "missing title", actor: f.user, mutate: func(r *dto.CreateNoteRequest) { r.Title = " " }, kind: apperror.KindValidation},
		{name: "missing province", actor: f.user, mutate: func(r *dto.CreateNoteRequest) { r.Province = "" }, kind: apperror.KindValidation},
		{name: "bad event date", actor: f.user, mutate: func(r *dto.CreateNoteRequest) { r.EventDate = "yesterday" }, kind: apperror.KindValidation},
		{name: "author not a uuid", actor: f.admin, mutate: func(r *dto.CreateNoteRequest) { r.AuthorId = "42" }, kind: apperror.KindForeignKey},
		{name: "unknown author", actor: f.admin, mutate: func(r *dto.CreateNoteRequest) { r.AuthorId = uuid.NewString() }, kind: apperror.KindForeignKey},
		{name: "unknown category", actor: f.user, mutate: func(r *dto.CreateNoteRequest) { r.CategoryIds = []string{uuid.NewString()} }, kind: apperror.KindForeignKey},
		{name: "writing as someone else", actor: f.user, mutate: func(r *dto.CreateNoteRequest) { r.AuthorId = f.other.Id.String() }, kind: apperror.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest(f.user.Id)
			tt.mutate(req)
			_, err := svc.Create(ctx, actor(tt.actor), req)
			assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&model.Note{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNoteServiceCreateAcceptsDateOnlyAndEmptyArrays(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)

	req := createRequest(f.user.Id)
	req.EventDate = "2024-03-10"
	req.Tags = nil
	req.PhoneNumbers = []string{}

	created, err := svc.Create(context.Background(), actor(f.admin), req)
	require.NoError(t, err)
	assert.Equal(t, []string{}, created.Tags)
	assert.Equal(t, []string{}, created.PhoneNumbers)
	assert.Equal(t, f.user.Id, created.AuthorId)
}

func TestNoteServiceUpdateReplacesCategories(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()
	work := testutil.SeedCategory(t, f.db, "Work")
	home := testutil.SeedCategory(t, f.db, "Home")

	created, err := svc.Create(ctx, actor(f.user), createRequest(f.user.Id, work.Id))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, actor(f.user), &dto.UpdateNoteRequest{
		Id:          created.Id,
		Title:       "Retro",
		Content:     "What went well",
		EventDate:   "2024-03-11T10:00",
		Province:    "Java",
		CategoryIds: []string{home.Id.String()},
		IsArchived:  boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Retro", updated.Title)
	assert.Equal(t, "Java", updated.Province)
	assert.True(t, updated.IsArchived)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, f.user.Id, updated.AuthorId)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Home", updated.Categories[0].Name)
	assert.Equal(t, []string{}, updated.Tags)

	cleared, err := svc.Update(ctx, actor(f.admin), &dto.UpdateNoteRequest{
		Id:        created.Id,
		Title:     "Retro",
		Content:   "What went well",
		EventDate: "2024-03-11",
		Province:  "Java",
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Categories)
	assert.True(t, cleared.IsArchived, "absent flag keeps the stored value")
}

func TestNoteServiceUpdateErrors(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()

	created, err := svc.Create(ctx, actor(f.user), createRequest(f.user.Id))
	require.NoError(t, err)

	base := func() *dto.UpdateNoteRequest {
		return &dto.UpdateNoteRequest{Id: created.Id, Title: "T", Content: "C", EventDate: "2024-01-01", Province: "P"}
	}

	t.Run("not found", func(t *testing.T) {
		req := base()
		req.Id = uuid.New()
		_, err := svc.Update(ctx, actor(f.user), req)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("unknown category is a validation error", func(t *testing.T) {
		req := base()
		req.CategoryIds = []string{uuid.NewString()}
		_, err := svc.Update(ctx, actor(f.user), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("missing content", func(t *testing.T) {
		req := base()
		req.Content = ""
		_, err := svc.Update(ctx, actor(f.user), req)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("other user forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, actor(f.other), base())
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	got, err := svc.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
}

func TestNoteServiceDeleteCascadesComments(t *testing.T) {
	f := newFixture(t)
	notes := NewNoteService(f.uow, f.publisher)
	comments := NewCommentService(f.uow, f.publisher)
	ctx := context.Background()

	created, err := notes.Create(ctx, actor(f.user), createRequest(f.user.Id))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := comments.Create(ctx, actor(f.other), &dto.CreateCommentRequest{
			NoteId:   created.Id,
			Content:  "nice",
			AuthorId: f.other.Id.String(),
		})
		require.NoError(t, err)
	}

	assert.True(t, apperror.Is(notes.Delete(ctx, actor(f.other), created.Id), apperror.KindForbidden))
	require.NoError(t, notes.Delete(ctx, actor(f.user), created.Id))

	var remaining int64
	require.NoError(t, f.db.Model(&model.Comment{}).Where("note_id = ?", created.Id).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err = notes.Get(ctx, created.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.True(t, apperror.Is(notes.Delete(ctx, actor(f.user), created.Id), apperror.KindNotFound))
}

func TestNoteServiceSetRating(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()

	created, err := svc.Create(ctx, actor(f.user), createRequest(f.user.Id))
	require.NoError(t, err)

	rated, err := svc.SetRating(ctx, actor(f.user), created.Id, &dto.SetRatingRequest{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, rated.Rating)
	assert.Equal(t, "ana", rated.Author.Username)

	for _, bad := range []*int{intPtr(-1), intPtr(6), nil} {
		_, err := svc.SetRating(ctx, actor(f.user), created.Id, &dto.SetRatingRequest{Rating: bad})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	}

	_, err = svc.SetRating(ctx, actor(f.user), uuid.New(), &dto.SetRatingRequest{Rating: intPtr(1)})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = svc.SetRating(ctx, actor(f.other), created.Id, &dto.SetRatingRequest{Rating: intPtr(1)})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	got, err := svc.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
}

func TestNoteServiceListFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewNoteService(f.uow, f.publisher)
	ctx := context.Background()
	a := testutil.SeedCategory(t, f.db, "A")
	b := testutil.SeedCategory(t, f.db, "B")

	mk := func(title, province string, cats ...uuid.UUID) {
		req := createRequest(f.user.Id, cats...)
		req.Title = title
		req.Province = province
		_, err := svc.Create(ctx, actor(f.user), req)
		require.NoError(t, err)
	}
	mk("only-a", "P1", a.Id)
	mk("both", "P2", a.Id, b.Id)
	mk("only-b", "P3", b.Id)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "only-b", all[0].Title, "newest update first")

	both, err := svc.List(ctx, &dto.NoteListQuery{Categories: []string{"A", "B"}})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "both", both[0].Title)

	either, err := svc.List(ctx, &dto.NoteListQuery{Provinces: []string{"P1", "P2"}})
	require.NoError(t, err)
	assert.Len(t, either, 2)

	_, err = svc.List(ctx, &dto.NoteListQuery{Archive: "sometimes"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
