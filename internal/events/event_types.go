package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/estate-navigator/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventNavigated        EventType = "navigated"
	EventLoggedOut        EventType = "logged_out"
	EventRoleChanged      EventType = "role_changed"
	EventAccessDenied     EventType = "access_denied"
	EventAuthStateChanged EventType = "auth_state_changed"
)

// Event represents a session event emitted by the shell.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Role      domain.Role `json:"role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, sessionID string, role domain.Role, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Role:      role,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NavigatedPayload payload.
type NavigatedPayload struct {
	From domain.PageID `json:"from"`
	To   domain.PageID `json:"to"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Page domain.PageID `json:"page"`
	View domain.View   `json:"view"`
}

// AuthStateChangedPayload payload.
type AuthStateChangedPayload struct {
	From domain.AuthFlowState `json:"from"`
	To   domain.AuthFlowState `json:"to"`
}
