package service

import (
	"context"
	"testing"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/testutil"
	"personal-notes-be/internal/pkg/token"
	"personal-notes-be/internal/repository/memory"
	"personal-notes-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(f *fixture) (IAuthService, *memory.SessionRepository, *token.Manager) {
	sessions := memory.NewSessionRepository()
	tokens := token.NewManager("test-secret")
	return NewAuthService(f.uow, sessions, tokens, time.Hour, f.publisher), sessions, tokens
}

func TestAuthServiceLogin(t *testing.T) {
	f := newFixture(t)
	svc, sessions, tokens := newAuthService(f)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "ana-pass"})
	require.NoError(t, err)

	assert.Equal(t, "Login successful", res.Message)
	assert.Equal(t, dto.UserIdentity{Id: f.user.Id.String(), Username: "ana", Role: "USER"}, res.User)
	assert.NotEmpty(t, res.Token)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, f.user.Id, claims.UserId)

	session, err := sessions.Get(ctx, claims.SessionId)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "ana", session.Username)
	assert.Equal(t, []string{events.UserLogin}, f.publisher.Types())
}

func TestAuthServiceSessionExpiryFollowsClock(t *testing.T) {
	f := newFixture(t)
	svc, sessions, tokens := newAuthService(f)
	issuedAt := time.Now().UTC().Truncate(time.Second)
	svc.(*authService).now = testutil.FixedClock(issuedAt)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ana", Password: "ana-pass"})
	require.NoError(t, err)
	assert.True(t, res.ExpiresAt.Equal(issuedAt.Add(time.Hour)))

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Equal(issuedAt.Add(time.Hour)))

	session, err := sessions.Get(context.Background(), claims.SessionId)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.True(t, session.CreatedAt.Equal(issuedAt))
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	svc, _, _ := newAuthService(f)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "nope"})
	_, unknownUser := svc.Login(ctx, &dto.LoginRequest{Username: "ghost", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.True(t, apperror.Is(wrongPassword, apperror.KindInvalidCredentials))
	assert.True(t, apperror.Is(unknownUser, apperror.KindInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Empty(t, f.publisher.Types())
}

func TestAuthServiceLoginRequiresFields(t *testing.T) {
	f := newFixture(t)
	svc, _, _ := newAuthService(f)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "  ", Password: "x"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestAuthServiceMeAndLogout(t *testing.T) {
	f := newFixture(t)
	svc, sessions, tokens := newAuthService(f)
	ctx := context.Background()

	res, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)

	current := actor(f.admin)
	current.SessionId = claims.SessionId

	me, err := svc.Me(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", me.User.Role)

	require.NoError(t, svc.Logout(ctx, current))
	session, err := sessions.Get(ctx, claims.SessionId)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, []string{events.UserLogin, events.UserLogout}, f.publisher.Types())

	_, err = svc.Me(ctx, nil)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}
