package controller

import (
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/serverutils"
	"exam-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubjectController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	ListSubjects(ctx *fiber.Ctx) error
	GetSpace(ctx *fiber.Ctx) error
	AddChapter(ctx *fiber.Ctx) error
	UpsertNote(ctx *fiber.Ctx) error
	UpdateChapter(ctx *fiber.Ctx) error
	DeleteChapter(ctx *fiber.Ctx) error
	ToggleComplete(ctx *fiber.Ctx) error
	ToggleWeak(ctx *fiber.Ctx) error
}

type subjectController struct {
	service service.ISubjectService
}

func NewSubjectController(service service.ISubjectService) ISubjectController {
	return &subjectController{service: service}
}

func (c *subjectController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/subject/v1", jwtMiddleware)
	h.Get("", c.ListSubjects)
	h.Get("/:id", c.GetSpace)
	h.Post("/:id/chapters", c.AddChapter)
	h.Put("/:id/notes/:paper", c.UpsertNote)

	ch := r.Group("/chapter/v1", jwtMiddleware)
	ch.Put("/:id", c.UpdateChapter)
	ch.Delete("/:id", c.DeleteChapter)
	ch.Patch("/:id/complete", c.ToggleComplete)
	ch.Patch("/:id/weak", c.ToggleWeak)
}

func (c *subjectController) ListSubjects(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListSubjects(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subjects", res))
}

// GetSpace returns the chapters, weak topics and note of one paper.
func (c *subjectController) GetSpace(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	subjectId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetSpace(ctx.UserContext(), userId, subjectId, ctx.Query("paper"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subject space", res))
}

func (c *subjectController) AddChapter(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	subjectId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateChapterRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddChapter(ctx.UserContext(), userId, subjectId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chapter added", res))
}

func (c *subjectController) UpsertNote(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	subjectId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpsertNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpsertNote(ctx.UserContext(), userId, subjectId, ctx.Params("paper"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Note saved", res))
}

func (c *subjectController) UpdateChapter(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	chapterId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateChapterRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateChapter(ctx.UserContext(), userId, chapterId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chapter updated", res))
}

func (c *subjectController) DeleteChapter(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	chapterId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteChapter(ctx.UserContext(), userId, chapterId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chapter deleted", nil))
}

func (c *subjectController) ToggleComplete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	chapterId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ToggleChapterComplete(ctx.UserContext(), userId, chapterId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chapter updated", res))
}

func (c *subjectController) ToggleWeak(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	chapterId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ToggleWeakTopic(ctx.UserContext(), userId, chapterId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chapter updated", res))
}
