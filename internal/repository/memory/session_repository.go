package memory

import (
	"context"
	"time"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewSessionRepository() *SessionRepository {
	// Items carry their own expiry; the janitor purges every 10 minutes
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		now:   time.Now,
	}
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	copied := *session
	r.cache.Set(session.Id, &copied, ttl)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*entity.Session, error) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, nil
	}
	session := *x.(*entity.Session)
	if session.Expired(r.now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}
