package controller

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICommentController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type commentController struct {
	service service.ICommentService
}

func NewCommentController(service service.ICommentService) ICommentController {
	return &commentController{service: service}
}

func (c *commentController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/notes/:id/comments")
	h.Get("", authMiddleware, c.List)
	h.Post("", authMiddleware, c.Create)
}

func (c *commentController) List(ctx *fiber.Ctx) error {
	noteId, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), noteId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *commentController) Create(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	noteId, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.NoteId = noteId

	res, err := c.service.Create(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}
