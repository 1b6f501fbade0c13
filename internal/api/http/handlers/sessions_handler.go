package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-navigator/internal/api/dto"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/service"
)

// SessionsHandler exposes session lifecycle and navigation endpoints.
type SessionsHandler struct {
	shells *service.ShellService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(shells *service.ShellService) *SessionsHandler {
	return &SessionsHandler{shells: shells}
}

// Create handles POST /sessions.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	shell, view := h.shells.CreateSession(c.UserContext())
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewViewResponse(shell.ID(), view),
	})
}

// Delete handles DELETE /sessions/:id.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	if err := h.shells.EndSession(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// View handles GET /sessions/:id/view.
func (h *SessionsHandler) View(c *fiber.Ctx) error {
	shell, ok := ShellFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusNotFound, "session not found")
	}
	return c.JSON(fiber.Map{"data": dto.NewViewResponse(shell.ID(), shell.View(c.UserContext()))})
}

// Navigate handles POST /sessions/:id/navigate.
func (h *SessionsHandler) Navigate(c *fiber.Ctx) error {
	shell, ok := ShellFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusNotFound, "session not found")
	}
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	view := h.shells.Navigate(c.UserContext(), shell, domain.PageID(req.Page))
	return c.JSON(fiber.Map{"data": dto.NewViewResponse(shell.ID(), view)})
}

// Routes handles GET /routes.
func (h *SessionsHandler) Routes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.shells.Routes()})
}
