package serverutils

import (
	"strings"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/pkg/token"
	"personal-notes-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// JwtMiddleware accepts a bearer token only while its server-side session is alive.
func JwtMiddleware(tokens *token.Manager, sessions contract.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			return apperror.NewUnauthorizedError("Missing token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			return apperror.NewUnauthorizedError("Invalid token")
		}

		session, err := sessions.Get(ctx.UserContext(), claims.SessionId)
		if err != nil {
			return apperror.NewInternalError("Failed to load session", err)
		}
		if session == nil || session.UserId != claims.UserId {
			return apperror.NewUnauthorizedError("Session expired")
		}

		ctx.Locals(userLocalsKey, &dto.SessionUser{
			Id:        session.UserId,
			Username:  session.Username,
			Role:      string(session.Role),
			SessionId: session.Id,
		})
		return ctx.Next()
	}
}

// RequireRole must run after JwtMiddleware.
func RequireRole(roles ...entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := CurrentUser(ctx)
		if err != nil {
			return err
		}
		for _, role := range roles {
			if user.Role == string(role) {
				return ctx.Next()
			}
		}
		return apperror.NewForbiddenError("Insufficient role")
	}
}

// CurrentUser returns the identity attached by JwtMiddleware.
func CurrentUser(ctx *fiber.Ctx) (*dto.SessionUser, error) {
	user, ok := ctx.Locals(userLocalsKey).(*dto.SessionUser)
	if !ok || user == nil {
		return nil, apperror.NewUnauthorizedError("Missing session")
	}
	return user, nil
}
