package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedViews struct {
	mu    sync.Mutex
	views []View
}

func (r *recordedViews) navigate(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordedViews) all() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]View(nil), r.views...)
}

func TestSessionStartsSignedOut(t *testing.T) {
	_, c := newTestClient(t)
	s := NewSession(c, nil)

	assert.Nil(t, s.CurrentUser())
	assert.False(t, s.IsLoading())
	assert.Empty(t, s.Error())
}

func TestSessionLoginAndLogout(t *testing.T) {
	_, c := newTestClient(t)
	views := &recordedViews{}
	s := NewSession(c, views.navigate)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "ana", "secret"))
	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "ana", user.Username)
	assert.False(t, user.IsAdmin())

	err := s.Login(ctx, "ana", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", s.Error())
	assert.Equal(t, "ana", s.CurrentUser().Username)

	require.NoError(t, s.Login(ctx, "ana", "secret"))
	assert.Empty(t, s.Error())

	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, []View{ViewHome, ViewHome, ViewLogin}, views.all())
}

func TestSessionRestore(t *testing.T) {
	_, c := newTestClient(t)
	views := &recordedViews{}
	s := NewSession(c, views.navigate)
	ctx := context.Background()

	require.Error(t, s.Restore(ctx, ""))
	require.Error(t, s.Restore(ctx, "stale"))
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, c.Token())

	require.NoError(t, s.Restore(ctx, testToken))
	assert.Equal(t, "u1", s.CurrentUser().ID)
	assert.Equal(t, []View{ViewLogin, ViewLogin, ViewHome}, views.all())
}

func TestSessionCurrentUserIsACopy(t *testing.T) {
	_, c := newTestClient(t)
	s := NewSession(c, nil)
	require.NoError(t, s.Login(context.Background(), "ana", "secret"))

	s.CurrentUser().Role = "ADMIN"
	assert.Equal(t, "USER", s.CurrentUser().Role)
}
