package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/events"
	"github.com/spec-kit/estate-navigator/internal/navigation"
	"github.com/spec-kit/estate-navigator/internal/observability"
)

// ErrNoAuthFlow is returned by auth actions when the current page is not the login page.
var ErrNoAuthFlow = errors.New("auth flow not active on current page")

// Options configures every shell created by a registry.
type Options struct {
	Resolver    *navigation.Resolver
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Delays      authflow.Delays
	DemoPrefill bool
	Logger      *zap.Logger
	// Scheduler overrides the timer-based scheduler. The shell's lock is not
	// taken around its callbacks, so they must not race with shell calls.
	Scheduler authflow.Scheduler
}

// Rendered is what the client should display for the current page.
type Rendered struct {
	Requested   domain.ViewDescriptor `json:"requested"`
	View        domain.ViewDescriptor `json:"view"`
	Denied      bool                  `json:"denied"`
	Role        domain.Role           `json:"role"`
	ScrollEpoch uint64                `json:"scroll_epoch"`
	Auth        *authflow.Snapshot    `json:"auth,omitempty"`
}

// Shell is the top-level context of one client: its role, its current page,
// and the auth flow while the login page is shown. All methods are safe for
// concurrent use; scheduled auth callbacks run under the same lock.
type Shell struct {
	id   string
	opts Options

	mu          sync.Mutex
	roles       *auth.RoleStore
	nav         *navigation.Controller
	flow        *authflow.Flow
	scrollEpoch uint64
	logger      *zap.Logger
}

func newShell(id string, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		id:     id,
		opts:   opts,
		roles:  auth.NewRoleStore(),
		logger: logger.With(zap.String("session_id", id)),
	}
	s.nav = navigation.NewController(s.roles, navigation.ScrollFunc(func() { s.scrollEpoch++ }), s.logger)
	return s
}

// ID returns the session identifier.
func (s *Shell) ID() string { return s.id }

// Role returns the active role.
func (s *Shell) Role() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roles.CurrentRole()
}

// CurrentPage returns the current page token.
func (s *Shell) CurrentPage() domain.PageID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.CurrentPage()
}

// ScrollEpoch counts scroll resets; the client scrolls to top when it changes.
func (s *Shell) ScrollEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollEpoch
}

// Navigate is the single entry point views use to change page.
func (s *Shell) Navigate(ctx context.Context, page domain.PageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigate(ctx, page)
}

// View resolves the current page and gates it against the current role. It has
// no side effects, so clients may poll it.
func (s *Shell) View(_ context.Context) Rendered {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := s.roles.CurrentRole()
	requested := s.opts.Resolver.Resolve(s.nav.CurrentPage())
	view, granted := auth.Authorize(requested, role)

	out := Rendered{
		Requested:   requested,
		View:        view,
		Denied:      !granted,
		Role:        role,
		ScrollEpoch: s.scrollEpoch,
	}
	if s.flow != nil {
		snap := s.flow.Snapshot()
		out.Auth = &snap
	}
	return out
}

// Auth runs fn against the active auth flow.
func (s *Shell) Auth(fn func(*authflow.Flow) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return ErrNoAuthFlow
	}
	return fn(s.flow)
}

// AuthSnapshot returns the auth flow state, if the flow is active.
func (s *Shell) AuthSnapshot() (authflow.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return authflow.Snapshot{}, false
	}
	return s.flow.Snapshot(), true
}

// Close tears down the auth flow so pending callbacks are discarded.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow != nil {
		s.flow.Close()
		s.flow = nil
	}
}

func (s *Shell) navigate(ctx context.Context, page domain.PageID) {
	from := s.nav.CurrentPage()
	oldRole := s.roles.CurrentRole()

	s.nav.Navigate(page)

	if page == domain.PageLogout {
		s.publish(ctx, events.EventLoggedOut, nil)
		if oldRole != s.roles.CurrentRole() {
			s.publish(ctx, events.EventRoleChanged, events.RoleChangedPayload{OldRole: oldRole, NewRole: s.roles.CurrentRole()})
		}
	}
	s.syncFlow()
	s.publish(ctx, events.EventNavigated, events.NavigatedPayload{From: from, To: s.nav.CurrentPage()})
	s.recordOutcome(ctx)
}

// recordOutcome counts the gate decision for the page just navigated to.
func (s *Shell) recordOutcome(ctx context.Context) {
	requested := s.opts.Resolver.Resolve(s.nav.CurrentPage())
	_, granted := auth.Authorize(requested, s.roles.CurrentRole())
	s.opts.Metrics.RecordNavigation(string(requested.View), granted)
	if !granted {
		s.publish(ctx, events.EventAccessDenied, events.AccessDeniedPayload{Page: requested.Page, View: requested.View})
	}
}

func (s *Shell) setRole(role domain.Role) {
	old := s.roles.CurrentRole()
	s.roles.SetRole(role)
	if old != role {
		s.logger.Info("role changed", zap.String("old_role", string(old)), zap.String("new_role", string(role)))
		s.publish(context.Background(), events.EventRoleChanged, events.RoleChangedPayload{OldRole: old, NewRole: role})
	}
}

// syncFlow keeps the auth flow alive only while the login page is current.
func (s *Shell) syncFlow() {
	onLogin := s.nav.CurrentPage() == domain.PageLogin
	if onLogin && (s.flow == nil || s.flow.Closed()) {
		s.flow = s.newFlow()
		return
	}
	if !onLogin && s.flow != nil {
		s.flow.Close()
		s.flow = nil
	}
}

func (s *Shell) newFlow() *authflow.Flow {
	sched := s.opts.Scheduler
	if sched == nil {
		sched = authflow.TimerScheduler{Guard: &s.mu}
	}
	return authflow.New(authflow.Config{
		Roles:       hooks{s},
		Navigator:   hooks{s},
		Scheduler:   sched,
		Delays:      s.opts.Delays,
		DemoPrefill: s.opts.DemoPrefill,
		Logger:      s.logger,
		OnStateChange: func(from, to domain.AuthFlowState) {
			s.publish(context.Background(), events.EventAuthStateChanged, events.AuthStateChangedPayload{From: from, To: to})
		},
	})
}

func (s *Shell) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.opts.Dispatcher == nil {
		return
	}
	ev := events.New(eventType, s.id, s.roles.CurrentRole(), payload)
	if err := s.opts.Dispatcher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(eventType)), zap.Error(err))
	}
}

// hooks lets the auth flow call back into the shell while the lock is held.
type hooks struct{ s *Shell }

func (h hooks) SetRole(role domain.Role) { h.s.setRole(role) }
func (h hooks) Navigate(page domain.PageID) { h.s.navigate(context.Background(), page) }
