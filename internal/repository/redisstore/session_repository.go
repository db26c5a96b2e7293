package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionRepository keeps sessions in Redis so several API instances share them.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.rdb.Set(ctx, keyPrefix+session.Id, payload, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, keyPrefix+id).Err()
}
