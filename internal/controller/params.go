package controller

import (
	"strings"

	"personal-notes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// pathId parses a UUID route parameter. An id that cannot exist is reported as not found.
func pathId(ctx *fiber.Ctx, name, notFoundMessage string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NewNotFoundError(notFoundMessage)
	}
	return id, nil
}

// queryList collects repeated and comma separated values of a query parameter.
func queryList(ctx *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range ctx.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
