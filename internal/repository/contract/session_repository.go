package contract

import (
	"context"

	"personal-notes-be/internal/entity"
)

// SessionRepository stores live sessions until they expire or are deleted.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get returns nil, nil when the session is unknown or expired.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
