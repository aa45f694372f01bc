package controller

import (
	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/serverutils"
	"exam-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	ListSessions(ctx *fiber.Ctx) error
	RecordSession(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/session/v1", jwtMiddleware)
	h.Get("", c.ListSessions)
	h.Post("", c.RecordSession)
}

func (c *sessionController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Study sessions", res))
}

func (c *sessionController) RecordSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.RecordSession(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Study session recorded", res))
}
