package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/estate-navigator/internal/service"
	"github.com/spec-kit/estate-navigator/internal/session"
)

const shellKey = "session_shell"

// SessionMiddleware loads the session named by the :id route parameter.
type SessionMiddleware struct {
	shells *service.ShellService
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(shells *service.ShellService) *SessionMiddleware {
	return &SessionMiddleware{shells: shells}
}

// Handle rejects requests for unknown sessions.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	shell, err := m.shells.Lookup(c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals(shellKey, shell)
	return c.Next()
}

// ShellFromContext retrieves the session loaded by SessionMiddleware.
func ShellFromContext(c *fiber.Ctx) (*session.Shell, bool) {
	val := c.Locals(shellKey)
	if val == nil {
		return nil, false
	}
	shell, ok := val.(*session.Shell)
	return shell, ok
}
