package controller

import (
	"exam-prep-be/internal/pkg/serverutils"
	"exam-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOverviewController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Dashboard(ctx *fiber.Ctx) error
	Tracker(ctx *fiber.Ctx) error
	Planner(ctx *fiber.Ctx) error
	WeeklyReport(ctx *fiber.Ctx) error
}

type overviewController struct {
	service service.IOverviewService
}

func NewOverviewController(service service.IOverviewService) IOverviewController {
	return &overviewController{service: service}
}

func (c *overviewController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/dashboard/v1", jwtMiddleware, c.Dashboard)
	r.Get("/tracker/v1", jwtMiddleware, c.Tracker)
	r.Get("/planner/v1", jwtMiddleware, c.Planner)
	r.Post("/report/v1/weekly", jwtMiddleware, c.WeeklyReport)
}

func (c *overviewController) Dashboard(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Dashboard(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard", res))
}

func (c *overviewController) Tracker(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Tracker(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Progress tracker", res))
}

func (c *overviewController) Planner(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Planner(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Study planner", res))
}

func (c *overviewController) WeeklyReport(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SendWeeklyReport(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Weekly report sent", res))
}
