package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/navigation"
	"github.com/spec-kit/estate-navigator/internal/session"
	"github.com/spec-kit/estate-navigator/internal/testutil"
	apperrors "github.com/spec-kit/estate-navigator/pkg/util"
)

func newShellService(t *testing.T) (*ShellService, *testutil.ManualScheduler) {
	t.Helper()
	resolver, err := navigation.NewDefaultResolver()
	require.NoError(t, err)
	sched := &testutil.ManualScheduler{}
	registry := session.NewRegistry(session.Options{
		Resolver:  resolver,
		Delays:    authflow.DefaultDelays(),
		Scheduler: sched,
	})
	return NewShellService(ShellDependencies{Sessions: registry, Resolver: resolver}), sched
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.HTTPStatus
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", session.ErrNotFound, http.StatusNotFound},
		{"unknown account type", authflow.ErrUnknownAccountType, http.StatusBadRequest},
		{"no flow", session.ErrNoAuthFlow, http.StatusConflict},
		{"busy", authflow.ErrBusy, http.StatusConflict},
		{"invalid action", authflow.ErrInvalidAction, http.StatusConflict},
		{"closed", authflow.ErrClosed, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(t, mapError(tt.err)))
		})
	}
	assert.NoError(t, mapError(nil))
}

func TestShellServiceLoginFlow(t *testing.T) {
	svc, sched := newShellService(t)
	ctx := context.Background()

	shell, view := svc.CreateSession(ctx)
	assert.Equal(t, domain.PageHome, view.Requested.Page)

	_, err := svc.AuthState(shell)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	view = svc.Navigate(ctx, shell, domain.PageLogin)
	require.NotNil(t, view.Auth)

	_, err = svc.SelectAccountType(ctx, shell, "landlord")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.SelectAccountType(ctx, shell, domain.AccountAgent)
	require.NoError(t, err)
	view, err = svc.SubmitLogin(ctx, shell, auth.Credentials{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, view.Auth.Busy)

	_, err = svc.SubmitLogin(ctx, shell, auth.Credentials{Email: "a@example.com", Password: "pw"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	sched.FireAll()
	view = shell.View(ctx)
	assert.Equal(t, domain.RoleAgent, view.Role)
	assert.Equal(t, domain.PageAgentVerification, view.Requested.Page)
}

func TestShellServiceSessions(t *testing.T) {
	svc, _ := newShellService(t)

	shell, _ := svc.CreateSession(context.Background())
	got, err := svc.Lookup(shell.ID())
	require.NoError(t, err)
	assert.Same(t, shell, got)

	require.NoError(t, svc.EndSession(shell.ID()))
	_, err = svc.Lookup(shell.ID())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.EndSession(shell.ID())))
}

func TestRoutes(t *testing.T) {
	svc, _ := newShellService(t)
	routes := svc.Routes()
	require.NotEmpty(t, routes)

	byPage := map[domain.PageID]RouteInfo{}
	byPrefix := map[string]RouteInfo{}
	for _, r := range routes {
		if r.Prefix != "" {
			byPrefix[r.Prefix] = r
			continue
		}
		byPage[r.Page] = r
	}

	assert.Empty(t, byPage[domain.PageHome].Roles)
	assert.Equal(t, []domain.Role{domain.RoleAdministrator}, byPage["admin-users"].Roles)
	assert.ElementsMatch(t, []domain.Role{domain.RoleAdministrator, domain.RoleEditor}, byPage[domain.PageAdminDashboard].Roles)

	edit, ok := byPrefix[domain.PrefixAdminEdit]
	require.True(t, ok)
	assert.Equal(t, domain.View("admin-page-editor"), edit.View)
	_, ok = byPrefix[domain.PrefixAdminSiteOptions]
	assert.True(t, ok)

	assert.NotContains(t, byPage, domain.PageLogout)
}
