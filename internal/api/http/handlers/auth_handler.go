package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-navigator/internal/api/dto"
	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/service"
	"github.com/spec-kit/estate-navigator/internal/session"
)

// AuthHandler drives the login view's state machine. Required-field checks
// happen here, the flow itself accepts every submission.
type AuthHandler struct {
	shells *service.ShellService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(shells *service.ShellService) *AuthHandler {
	return &AuthHandler{shells: shells}
}

// State handles GET /sessions/:id/auth.
func (h *AuthHandler) State(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	snap, err := h.shells.AuthState(shell)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": snap})
}

// SelectAccountType handles POST /sessions/:id/auth/account-type.
func (h *AuthHandler) SelectAccountType(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	var req dto.AccountTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.AccountType == "" {
		return fiber.NewError(http.StatusBadRequest, "account_type required")
	}
	return respond(c, shell)(h.shells.SelectAccountType(c.UserContext(), shell, domain.AccountType(req.AccountType)))
}

// Login handles POST /sessions/:id/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
	}
	creds := auth.Credentials{Email: req.Email, Password: req.Password}
	// An empty form submits the pre-filled demo credentials.
	if creds == (auth.Credentials{}) {
		if snap, err := h.shells.AuthState(shell); err == nil && snap.Prefilled {
			return respond(c, shell)(h.shells.SubmitLogin(c.UserContext(), shell, creds))
		}
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}
	return respond(c, shell)(h.shells.SubmitLogin(c.UserContext(), shell, creds))
}

// OpenRegistration handles POST /sessions/:id/auth/register/open.
func (h *AuthHandler) OpenRegistration(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	return respond(c, shell)(h.shells.OpenRegistration(c.UserContext(), shell))
}

// Register handles POST /sessions/:id/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}
	reg := authflow.Registration{Name: req.Name, Email: req.Email, Password: req.Password}
	return respond(c, shell)(h.shells.SubmitRegistration(c.UserContext(), shell, reg))
}

// OpenPasswordReset handles POST /sessions/:id/auth/password-reset/open.
func (h *AuthHandler) OpenPasswordReset(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	return respond(c, shell)(h.shells.OpenPasswordReset(c.UserContext(), shell))
}

// RequestPasswordReset handles POST /sessions/:id/auth/password-reset.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}
	return respond(c, shell)(h.shells.SubmitPasswordReset(c.UserContext(), shell, req.Email))
}

// Back handles POST /sessions/:id/auth/back.
func (h *AuthHandler) Back(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	return respond(c, shell)(h.shells.Back(c.UserContext(), shell))
}

// Confirm handles POST /sessions/:id/auth/confirm.
func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	shell, err := shellOrError(c)
	if err != nil {
		return err
	}
	return respond(c, shell)(h.shells.Confirm(c.UserContext(), shell))
}

func shellOrError(c *fiber.Ctx) (*session.Shell, error) {
	shell, ok := ShellFromContext(c)
	if !ok {
		return nil, fiber.NewError(http.StatusNotFound, "session not found")
	}
	return shell, nil
}

// respond writes the rendered view, or returns the action's error. Submissions
// answer 202 because their outcome arrives after the simulated delay.
func respond(c *fiber.Ctx, shell *session.Shell) func(session.Rendered, error) error {
	return func(view session.Rendered, err error) error {
		if err != nil {
			return err
		}
		status := http.StatusOK
		if view.Auth != nil && view.Auth.Busy {
			status = http.StatusAccepted
		}
		return c.Status(status).JSON(fiber.Map{"data": dto.NewViewResponse(shell.ID(), view)})
	}
}
