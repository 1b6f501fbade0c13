package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/navigation"
	"github.com/spec-kit/estate-navigator/internal/session"
	apperrors "github.com/spec-kit/estate-navigator/pkg/util"
)

// RouteInfo describes one registered route for clients and tooling.
type RouteInfo struct {
	Page   domain.PageID `json:"page,omitempty"`
	Prefix string        `json:"prefix,omitempty"`
	View   domain.View   `json:"view"`
	Roles  []domain.Role `json:"roles,omitempty"`
}

// ShellService coordinates sessions for the transport layer.
type ShellService struct {
	sessions *session.Registry
	resolver *navigation.Resolver
	logger   *zap.Logger
}

// ShellDependencies bundles collaborators of the shell service.
type ShellDependencies struct {
	Sessions *session.Registry
	Resolver *navigation.Resolver
	Logger   *zap.Logger
}

// NewShellService builds the service.
func NewShellService(deps ShellDependencies) *ShellService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShellService{sessions: deps.Sessions, resolver: deps.Resolver, logger: logger}
}

// CreateSession starts a guest session on the home page.
func (s *ShellService) CreateSession(ctx context.Context) (*session.Shell, session.Rendered) {
	shell := s.sessions.Create()
	return shell, shell.View(ctx)
}

// Lookup returns a live session.
func (s *ShellService) Lookup(id string) (*session.Shell, error) {
	shell, err := s.sessions.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	return shell, nil
}

// EndSession closes a session and discards its pending auth work.
func (s *ShellService) EndSession(id string) error {
	return mapError(s.sessions.Close(id))
}

// Navigate changes the session page and returns the view to render.
func (s *ShellService) Navigate(ctx context.Context, shell *session.Shell, page domain.PageID) session.Rendered {
	shell.Navigate(ctx, page)
	return shell.View(ctx)
}

// AuthState returns the auth flow snapshot of the session.
func (s *ShellService) AuthState(shell *session.Shell) (authflow.Snapshot, error) {
	snap, ok := shell.AuthSnapshot()
	if !ok {
		return authflow.Snapshot{}, mapError(session.ErrNoAuthFlow)
	}
	return snap, nil
}

// SelectAccountType changes the account type on the active form.
func (s *ShellService) SelectAccountType(ctx context.Context, shell *session.Shell, t domain.AccountType) (session.Rendered, error) {
	return s.authAction(ctx, shell, func(f *authflow.Flow) error { return f.SelectAccountType(t) })
}

// SubmitLogin starts the simulated sign-in.
func (s *ShellService) SubmitLogin(ctx context.Context, shell *session.Shell, creds auth.Credentials) (session.Rendered, error) {
	return s.authAction(ctx, shell, func(f *authflow.Flow) error { return f.SubmitLogin(creds) })
}

// OpenRegistration shows the sign-up form or redirects editors.
func (s *ShellService) OpenRegistration(ctx context.Context, shell *session.Shell) (session.Rendered, error) {
	return s.authAction(ctx, shell, (*authflow.Flow).OpenRegistration)
}

// SubmitRegistration starts the simulated sign-up.
func (s *ShellService) SubmitRegistration(ctx context.Context, shell *session.Shell, reg authflow.Registration) (session.Rendered, error) {
	return s.authAction(ctx, shell, func(f *authflow.Flow) error { return f.SubmitRegistration(reg) })
}

// OpenPasswordReset shows the reset request form.
func (s *ShellService) OpenPasswordReset(ctx context.Context, shell *session.Shell) (session.Rendered, error) {
	return s.authAction(ctx, shell, (*authflow.Flow).OpenPasswordReset)
}

// SubmitPasswordReset starts the simulated reset request.
func (s *ShellService) SubmitPasswordReset(ctx context.Context, shell *session.Shell, email string) (session.Rendered, error) {
	return s.authAction(ctx, shell, func(f *authflow.Flow) error { return f.SubmitPasswordReset(email) })
}

// Back returns to credential entry.
func (s *ShellService) Back(ctx context.Context, shell *session.Shell) (session.Rendered, error) {
	return s.authAction(ctx, shell, (*authflow.Flow).Back)
}

// Confirm completes identity verification.
func (s *ShellService) Confirm(ctx context.Context, shell *session.Shell) (session.Rendered, error) {
	return s.authAction(ctx, shell, (*authflow.Flow).Confirm)
}

// Routes lists the route table, static pages first.
func (s *ShellService) Routes() []RouteInfo {
	pages := s.resolver.Pages()
	out := make([]RouteInfo, 0, len(pages))
	for _, p := range pages {
		desc := s.resolver.Resolve(p)
		out = append(out, RouteInfo{Page: p, View: desc.View, Roles: desc.RequiredRoles.Slice()})
	}
	for _, prefix := range s.resolver.Prefixes() {
		desc := s.resolver.Resolve(domain.PageID(prefix))
		out = append(out, RouteInfo{Prefix: prefix, View: desc.View, Roles: desc.RequiredRoles.Slice()})
	}
	return out
}

func (s *ShellService) authAction(ctx context.Context, shell *session.Shell, fn func(*authflow.Flow) error) (session.Rendered, error) {
	if err := shell.Auth(fn); err != nil {
		s.logger.Debug("auth action refused", zap.String("session_id", shell.ID()), zap.Error(err))
		return session.Rendered{}, mapError(err)
	}
	return shell.View(ctx), nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrNotFound):
		return apperrors.NewNotFound("session", nil)
	case errors.Is(err, authflow.ErrUnknownAccountType):
		return apperrors.NewValidationError(err.Error(), map[string]any{"account_types": domain.AccountTypes()})
	case errors.Is(err, session.ErrNoAuthFlow),
		errors.Is(err, authflow.ErrBusy),
		errors.Is(err, authflow.ErrInvalidAction),
		errors.Is(err, authflow.ErrClosed):
		return apperrors.NewConflict(err.Error(), err)
	default:
		return apperrors.NewInternalError(err)
	}
}
