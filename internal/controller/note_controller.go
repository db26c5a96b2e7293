package controller

import (
	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SetRating(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

// RegisterRoutes guards each route individually so the comment routes that
// share the /notes prefix do not run the middleware twice.
func (c *noteController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/notes")
	h.Get("", authMiddleware, c.List)
	h.Post("", authMiddleware, c.Create)
	h.Get("/:id", authMiddleware, c.Show)
	h.Put("/:id", authMiddleware, c.Update)
	h.Delete("/:id", authMiddleware, c.Delete)
	h.Put("/:id/rating", authMiddleware, c.SetRating)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	query := dto.NoteListQuery{
		Title:      ctx.Query("title"),
		Content:    ctx.Query("content"),
		Phone:      ctx.Query("phone"),
		From:       ctx.Query("from"),
		To:         ctx.Query("to"),
		Categories: queryList(ctx, "category"),
		Tags:       queryList(ctx, "tag"),
		Provinces:  queryList(ctx, "province"),
		Archive:    ctx.Query("archive"),
		Publish:    ctx.Query("publish"),
	}

	res, err := c.noteService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	res, err := c.noteService.Get(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), user, id); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Note deleted"})
}

func (c *noteController) SetRating(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}

	id, err := pathId(ctx, "id", "Note not found")
	if err != nil {
		return err
	}

	var req dto.SetRatingRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.SetRating(ctx.UserContext(), user, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
