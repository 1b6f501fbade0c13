package navigation

import (
	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/domain"
)

// RoleResetter is the part of the role store the controller needs for logout.
type RoleResetter interface {
	Reset()
}

// ScrollResetter performs the scroll-to-top side effect of every navigation.
type ScrollResetter interface {
	ResetScroll()
}

// ScrollFunc adapts a plain function to ScrollResetter.
type ScrollFunc func()

// ResetScroll calls f.
func (f ScrollFunc) ResetScroll() { f() }

type noopRoles struct{}

func (noopRoles) Reset() {}

// Controller owns the current page of a session.
type Controller struct {
	page   domain.PageID
	roles  RoleResetter
	scroll ScrollResetter
	logger *zap.Logger
}

// NewController returns a controller parked on the home page.
func NewController(roles RoleResetter, scroll ScrollResetter, logger *zap.Logger) *Controller {
	if roles == nil {
		roles = noopRoles{}
	}
	if scroll == nil {
		scroll = ScrollFunc(func() {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{page: domain.PageHome, roles: roles, scroll: scroll, logger: logger}
}

// Navigate changes the current page. The reserved logout token also resets the
// role and lands on home. The page is stored verbatim; resolution happens later.
func (c *Controller) Navigate(page domain.PageID) {
	if page == domain.PageLogout {
		c.roles.Reset()
		c.page = domain.PageHome
		c.scroll.ResetScroll()
		c.logger.Debug("logout navigation")
		return
	}
	from := c.page
	c.page = page
	c.scroll.ResetScroll()
	c.logger.Debug("navigate", zap.String("from", string(from)), zap.String("to", string(page)))
}

// CurrentPage returns the current page token.
func (c *Controller) CurrentPage() domain.PageID {
	return c.page
}
