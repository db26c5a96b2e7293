package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/token"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, user *dto.SessionUser) error
	Me(ctx context.Context, user *dto.SessionUser) (*dto.MeResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.SessionRepository
	tokens     *token.Manager
	sessionTTL time.Duration
	publisher  IPublisherService
	now        func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	tokens *token.Manager,
	sessionTTL time.Duration,
	publisher IPublisherService,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Unknown usernames are still compared against a hash so both failure paths cost the same.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return hash
})

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.NewValidationError("Username and password are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(req.Password))
		return nil, apperror.NewInvalidCredentialsError()
	}

	// A stored value that is not a bcrypt hash can never match either
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewInvalidCredentialsError()
	}

	now := s.now()
	session := &entity.Session{
		Id:        uuid.NewString(),
		UserId:    user.Id,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperror.NewInternalError("Failed to create session", err)
	}

	signed, err := s.tokens.Issue(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.Id)
		return nil, apperror.NewInternalError("Failed to issue token", err)
	}

	s.publisher.Publish(ctx, events.New(events.UserLogin, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	}))

	return &dto.LoginResponse{
		Message:   "Login successful",
		User:      toUserIdentity(user.Identity()),
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, user *dto.SessionUser) error {
	if err := requireActor(user); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, user.SessionId); err != nil {
		return apperror.NewInternalError("Failed to end session", err)
	}

	s.publisher.Publish(ctx, events.New(events.UserLogout, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	}))
	return nil
}

// Me re-reads the user so a deleted account stops resolving even with a live session.
func (s *authService) Me(ctx context.Context, user *dto.SessionUser) (*dto.MeResponse, error) {
	if err := requireActor(user); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	found, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load user", err)
	}
	if found == nil {
		return nil, apperror.NewUnauthorizedError("Session user no longer exists")
	}

	return &dto.MeResponse{User: toUserIdentity(found.Identity())}, nil
}
