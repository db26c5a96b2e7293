package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/pkg/token"
	"personal-notes-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, resp *http.Response) ErrorBody {
	t.Helper()
	defer resp.Body.Close()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorHandlerMiddlewareMapsKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: apperror.NewValidationError("title is required"), wantStatus: 400, wantMsg: "title is required"},
		{name: "foreign key", err: apperror.NewForeignKeyError("author does not exist"), wantStatus: 400, wantMsg: "author does not exist"},
		{name: "credentials", err: apperror.NewInvalidCredentialsError(), wantStatus: 401, wantMsg: "Invalid username or password"},
		{name: "forbidden", err: apperror.NewForbiddenError("nope"), wantStatus: 403, wantMsg: "nope"},
		{name: "not found", err: apperror.NewNotFoundError("Note not found"), wantStatus: 404, wantMsg: "Note not found"},
		{name: "conflict", err: apperror.NewConflictError("taken"), wantStatus: 409, wantMsg: "taken"},
		{name: "wrapped", err: errors.Join(errors.New("ctx"), apperror.NewNotFoundError("gone")), wantStatus: 404, wantMsg: "gone"},
		{name: "plain error", err: errors.New("db exploded"), wantStatus: 500, wantMsg: "Internal server error"},
		{name: "fiber error", err: fiber.ErrMethodNotAllowed, wantStatus: 405, wantMsg: "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestErrorHandlerMiddlewareInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return apperror.NewInternalError("Failed to list notes", errors.New("connection reset"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body := decodeError(t, resp)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "connection reset", body.Detail)
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(dto.LoginRequest{Username: "ana"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "password is required")

	seven := 7
	err = ValidateRequest(dto.SetRatingRequest{Rating: &seven})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating must be at most 5")

	zero := 0
	assert.NoError(t, ValidateRequest(dto.SetRatingRequest{Rating: &zero}))
	assert.Error(t, ValidateRequest(dto.SetRatingRequest{}))
}

func TestParseBodyRejectsMistypedJSON(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Put("/", func(ctx *fiber.Ctx) error {
		var req dto.SetRatingRequest
		if err := ParseBody(ctx, &req); err != nil {
			return err
		}
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"rating":"3"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decodeError(t, resp).Message)
}

func newAuthApp(t *testing.T) (*fiber.App, *token.Manager, *memory.SessionRepository) {
	t.Helper()
	tokens := token.NewManager("test-secret")
	sessions := memory.NewSessionRepository()

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	protected := app.Group("/p", JwtMiddleware(tokens, sessions))
	protected.Get("/me", func(ctx *fiber.Ctx) error {
		user, err := CurrentUser(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(user)
	})
	protected.Get("/admin", RequireRole(entity.UserRoleAdmin), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app, tokens, sessions
}

func issue(t *testing.T, tokens *token.Manager, sessions *memory.SessionRepository, role entity.UserRole) (string, *entity.Session) {
	t.Helper()
	now := time.Now()
	session := &entity.Session{
		Id:        uuid.NewString(),
		UserId:    uuid.New(),
		Username:  "ana",
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), session))
	signed, err := tokens.Issue(session)
	require.NoError(t, err)
	return signed, session
}

func get(t *testing.T, app *fiber.App, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestJwtMiddleware(t *testing.T) {
	app, tokens, sessions := newAuthApp(t)
	signed, session := issue(t, tokens, sessions, entity.UserRoleUser)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/p/me", "").StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/p/me", "not-a-jwt").StatusCode)
	})

	t.Run("valid session", func(t *testing.T) {
		resp := get(t, app, "/p/me", signed)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		var user dto.SessionUser
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, session.UserId, user.Id)
		assert.Equal(t, "USER", user.Role)
	})

	t.Run("role required", func(t *testing.T) {
		assert.Equal(t, fiber.StatusForbidden, get(t, app, "/p/admin", signed).StatusCode)
	})

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, sessions.Delete(context.Background(), session.Id))
		assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/p/me", signed).StatusCode)
	})
}

func TestRequireRoleAdmin(t *testing.T) {
	app, tokens, sessions := newAuthApp(t)
	signed, _ := issue(t, tokens, sessions, entity.UserRoleAdmin)

	assert.Equal(t, fiber.StatusNoContent, get(t, app, "/p/admin", signed).StatusCode)
}
