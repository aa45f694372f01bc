package controller

import (
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/serverutils"
	"exam-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITaskController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	ListTasks(ctx *fiber.Ctx) error
	CreateTask(ctx *fiber.Ctx) error
	UpdateTask(ctx *fiber.Ctx) error
	ToggleTask(ctx *fiber.Ctx) error
	DeleteTask(ctx *fiber.Ctx) error
}

type taskController struct {
	service service.ITaskService
}

func NewTaskController(service service.ITaskService) ITaskController {
	return &taskController{service: service}
}

func (c *taskController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/task/v1", jwtMiddleware)
	h.Get("", c.ListTasks)
	h.Post("", c.CreateTask)
	h.Put("/:id", c.UpdateTask)
	h.Patch("/:id/complete", c.ToggleTask)
	h.Delete("/:id", c.DeleteTask)
}

// ListTasks defaults to today when no date is given.
func (c *taskController) ListTasks(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListTasks(ctx.UserContext(), userId, ctx.Query("date"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tasks", res))
}

func (c *taskController) CreateTask(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateTask(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Task created", res))
}

func (c *taskController) UpdateTask(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	taskId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateTask(ctx.UserContext(), userId, taskId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task updated", res))
}

func (c *taskController) ToggleTask(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	taskId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.ToggleTask(ctx.UserContext(), userId, taskId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task updated", res))
}

func (c *taskController) DeleteTask(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	taskId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteTask(ctx.UserContext(), userId, taskId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Task deleted", nil))
}
