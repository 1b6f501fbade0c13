package authflow

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/domain"
)

var (
	// ErrBusy is returned while a simulated submission is still pending.
	ErrBusy = errors.New("auth flow busy")
	// ErrInvalidAction is returned when an action does not apply to the current state.
	ErrInvalidAction = errors.New("action not available in current state")
	// ErrClosed is returned after the flow has completed or been torn down.
	ErrClosed = errors.New("auth flow closed")
	// ErrUnknownAccountType is returned for account types outside the form's options.
	ErrUnknownAccountType = errors.New("unknown account type")
)

// RoleSetter receives the role adopted on successful sign-in.
type RoleSetter interface {
	SetRole(domain.Role)
}

// Navigator moves the session to the landing page.
type Navigator interface {
	Navigate(domain.PageID)
}

// Config carries the collaborators of a Flow.
type Config struct {
	Roles       RoleSetter
	Navigator   Navigator
	Scheduler   Scheduler
	Delays      Delays
	DemoPrefill bool
	Logger      *zap.Logger
	// OnStateChange is invoked after every state transition.
	OnStateChange func(from, to domain.AuthFlowState)
}

// Registration is the payload of the sign-up form.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Snapshot is a read-only view of the flow for rendering.
type Snapshot struct {
	State       domain.AuthFlowState `json:"state"`
	AccountType domain.AccountType   `json:"account_type"`
	Email       string               `json:"email,omitempty"`
	Prefilled   bool                 `json:"prefilled"`
	Busy        bool                 `json:"busy"`
	Notice      string               `json:"notice,omitempty"`
	Closed      bool                 `json:"closed"`
}

// Flow is the state machine behind the login view. It is not safe for
// concurrent use; callers serialize access and run scheduled callbacks under
// the same guard.
type Flow struct {
	roles    RoleSetter
	nav      Navigator
	sched    Scheduler
	delays   Delays
	prefill  bool
	logger   *zap.Logger
	onChange func(from, to domain.AuthFlowState)

	state     domain.AuthFlowState
	account   domain.AccountType
	creds     auth.Credentials
	prefilled bool
	notice    string

	pending Timer
	gen     uint64
	closed  bool
}

// New returns a flow in credential entry with the default account type.
func New(cfg Config) *Flow {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Flow{
		roles:    cfg.Roles,
		nav:      cfg.Navigator,
		sched:    sched,
		delays:   cfg.Delays,
		prefill:  cfg.DemoPrefill,
		logger:   logger,
		onChange: cfg.OnStateChange,
		state:    domain.AuthStateCredentialEntry,
		account:  domain.AccountTypes()[0],
	}
}

// State returns the active state.
func (f *Flow) State() domain.AuthFlowState { return f.state }

// Busy reports whether a simulated submission is pending.
func (f *Flow) Busy() bool { return f.pending != nil }

// Closed reports whether the flow completed or was torn down.
func (f *Flow) Closed() bool { return f.closed }

// Snapshot returns the render state.
func (f *Flow) Snapshot() Snapshot {
	return Snapshot{
		State:       f.state,
		AccountType: f.account,
		Email:       f.creds.Email,
		Prefilled:   f.prefilled,
		Busy:        f.Busy(),
		Notice:      f.notice,
		Closed:      f.closed,
	}
}

// Credentials returns the values currently held by the login form.
func (f *Flow) Credentials() auth.Credentials { return f.creds }

// SelectAccountType changes the account type on the login or registration form.
// Choosing editor while registering redirects to the editor sign-up page.
func (f *Flow) SelectAccountType(t domain.AccountType) error {
	if err := f.ready(domain.AuthStateCredentialEntry, domain.AuthStateRegistration); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAccountType, t)
	}
	f.account = t

	if f.state == domain.AuthStateRegistration {
		if t == domain.AccountEditor {
			f.redirect(domain.PageEditorRegister)
		}
		return nil
	}

	if creds, ok := auth.DemoCredentials(t); ok && f.prefill {
		f.creds = creds
		f.prefilled = true
	} else if f.prefilled {
		f.creds = auth.Credentials{}
		f.prefilled = false
	}
	return nil
}

// SubmitLogin accepts any credentials and, after the login delay, signs in
// with the role of the selected account type. Empty credentials submit the
// pre-filled demo values when there are any.
func (f *Flow) SubmitLogin(creds auth.Credentials) error {
	if err := f.ready(domain.AuthStateCredentialEntry); err != nil {
		return err
	}
	if creds == (auth.Credentials{}) && f.prefilled {
		creds = f.creds
	}
	f.creds = creds
	f.notice = ""
	f.schedule(f.delays.Login, f.completeLogin)
	return nil
}

func (f *Flow) completeLogin() {
	if f.account.Role() == domain.RoleBuyer {
		f.roles.SetRole(domain.RoleBuyer)
		f.setState(domain.AuthStateVerificationPending)
		return
	}
	f.land()
}

// OpenRegistration switches to the sign-up form. Editors are sent straight to
// their own registration page without any delay.
func (f *Flow) OpenRegistration() error {
	if err := f.ready(domain.AuthStateCredentialEntry); err != nil {
		return err
	}
	if f.account == domain.AccountEditor {
		f.redirect(domain.PageEditorRegister)
		return nil
	}
	f.notice = ""
	f.setState(domain.AuthStateRegistration)
	return nil
}

// SubmitRegistration moves to identity verification after the register delay.
func (f *Flow) SubmitRegistration(reg Registration) error {
	if err := f.ready(domain.AuthStateRegistration); err != nil {
		return err
	}
	if f.account == domain.AccountEditor {
		f.redirect(domain.PageEditorRegister)
		return nil
	}
	f.creds = auth.Credentials{Email: reg.Email, Password: reg.Password}
	f.prefilled = false
	f.schedule(f.delays.Register, func() {
		f.setState(domain.AuthStateVerificationPending)
	})
	return nil
}

// OpenPasswordReset switches to the reset request form.
func (f *Flow) OpenPasswordReset() error {
	if err := f.ready(domain.AuthStateCredentialEntry); err != nil {
		return err
	}
	f.notice = ""
	f.setState(domain.AuthStatePasswordResetRequest)
	return nil
}

// SubmitPasswordReset surfaces a confirmation after the reset delay and
// returns to credential entry.
func (f *Flow) SubmitPasswordReset(email string) error {
	if err := f.ready(domain.AuthStatePasswordResetRequest); err != nil {
		return err
	}
	f.schedule(f.delays.PasswordReset, func() {
		f.notice = fmt.Sprintf("Password reset instructions sent to %s", email)
		f.setState(domain.AuthStateCredentialEntry)
	})
	return nil
}

// Back returns from registration or password reset to credential entry.
func (f *Flow) Back() error {
	if err := f.ready(domain.AuthStateRegistration, domain.AuthStatePasswordResetRequest); err != nil {
		return err
	}
	f.setState(domain.AuthStateCredentialEntry)
	return nil
}

// Confirm completes identity verification after the verify delay.
func (f *Flow) Confirm() error {
	if err := f.ready(domain.AuthStateVerificationPending); err != nil {
		return err
	}
	f.schedule(f.delays.Verify, f.land)
	return nil
}

// Close tears the flow down. Pending callbacks are cancelled and any that
// still fire are ignored.
func (f *Flow) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.gen++
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

// Landing returns the page an account type lands on once signed in.
func Landing(t domain.AccountType) domain.PageID {
	switch t {
	case domain.AccountAdministrator, domain.AccountEditor:
		return domain.PageAdminDashboard
	case domain.AccountAgent:
		return domain.PageAgentVerification
	case domain.AccountDeveloper:
		return domain.PageDeveloperDashboard
	case domain.AccountAgency:
		return domain.PageAgencyDashboard
	default:
		return domain.PageHome
	}
}

func (f *Flow) land() {
	role, page := f.account.Role(), Landing(f.account)
	f.logger.Info("sign-in complete",
		zap.String("account_type", string(f.account)),
		zap.String("role", string(role)),
		zap.String("landing", string(page)))
	f.Close()
	f.roles.SetRole(role)
	f.nav.Navigate(page)
}

func (f *Flow) redirect(page domain.PageID) {
	f.logger.Info("auth flow redirect", zap.String("page", string(page)))
	f.Close()
	f.nav.Navigate(page)
}

func (f *Flow) ready(allowed ...domain.AuthFlowState) error {
	if f.closed {
		return ErrClosed
	}
	if f.pending != nil {
		return ErrBusy
	}
	for _, s := range allowed {
		if f.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidAction, f.state)
}

func (f *Flow) schedule(d time.Duration, fn func()) {
	gen := f.gen
	f.pending = f.sched.Schedule(d, func() {
		if f.closed || gen != f.gen {
			return
		}
		f.pending = nil
		fn()
	})
}

func (f *Flow) setState(to domain.AuthFlowState) {
	from := f.state
	f.state = to
	f.logger.Debug("auth flow transition", zap.String("from", string(from)), zap.String("to", string(to)))
	if f.onChange != nil && from != to {
		f.onChange(from, to)
	}
}
