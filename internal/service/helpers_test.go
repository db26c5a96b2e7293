package service

import (
	"context"
	"sync"
	"testing"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/testutil"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	uow       unitofwork.RepositoryFactory
	publisher *recordingPublisher
	admin     *model.User
	user      *model.User
	other     *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &fixture{
		db:        db,
		uow:       unitofwork.NewRepositoryFactory(db, logger.NewNopLogger()),
		publisher: &recordingPublisher{},
		admin:     testutil.SeedUser(t, db, "admin", "admin-pass", string(entity.UserRoleAdmin)),
		user:      testutil.SeedUser(t, db, "ana", "ana-pass", string(entity.UserRoleUser)),
		other:     testutil.SeedUser(t, db, "budi", "budi-pass", string(entity.UserRoleUser)),
	}
}

func actor(u *model.User) *dto.SessionUser {
	return &dto.SessionUser{Id: u.Id, Username: u.Username, Role: u.Role}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
