package controller

import (
	"encoding/json"
	"strings"

	"exam-prep-be/internal/dto"
	"exam-prep-be/internal/pkg/logger"
	"exam-prep-be/internal/pkg/serverutils"
	"exam-prep-be/internal/service"
	internalWS "exam-prep-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IFocusController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Snapshot(ctx *fiber.Ctx) error
	SelectMode(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	SelectSubject(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type focusController struct {
	service   service.IFocusService
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewFocusController(service service.IFocusService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) IFocusController {
	return &focusController{service: service, hub: hub, jwtSecret: jwtSecret, logger: log}
}

func (c *focusController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/focus/v1")
	// Browsers cannot set headers on the upgrade request, so the socket authenticates itself.
	h.Get("/ws", c.ServeWs)

	h.Get("", jwtMiddleware, c.Snapshot)
	h.Post("/mode", jwtMiddleware, c.SelectMode)
	h.Post("/toggle", jwtMiddleware, c.Toggle)
	h.Post("/reset", jwtMiddleware, c.Reset)
	h.Post("/subject", jwtMiddleware, c.SelectSubject)
}

func (c *focusController) Snapshot(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Focus timer", c.service.Snapshot(ctx.UserContext(), userId)))
}

func (c *focusController) SelectMode(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.FocusModeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SelectMode(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Focus mode selected", res))
}

func (c *focusController) Toggle(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Toggle(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Focus timer toggled", res))
}

func (c *focusController) Reset(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Reset(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Focus timer reset", res))
}

func (c *focusController) SelectSubject(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.FocusSubjectRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SelectSubject(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Focus subject selected", res))
}

// ServeWs streams timer updates and activity to the user. The token comes from
// the "token" query parameter or, for non-browser clients, a bearer header.
func (c *focusController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return &dto.UnauthorizedError{Message: "Missing token"}
	}

	userId, err := serverutils.ParseToken(c.jwtSecret, tokenStr)
	if err != nil {
		c.logger.Warn("FocusController", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return err
	}

	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	initial, err := json.Marshal(internalWS.Message{
		Type: service.MessageFocus,
		Data: c.service.Snapshot(ctx.UserContext(), userId),
	})
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("FocusController", "Starting WebSocket session", map[string]interface{}{"user_id": userId})
		internalWS.ServeWs(c.hub, conn, userId, initial)
		c.logger.Info("FocusController", "WebSocket session ended", map[string]interface{}{"user_id": userId})
	})(ctx)
}
