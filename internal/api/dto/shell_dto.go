package dto

import (
	"github.com/spec-kit/estate-navigator/internal/authflow"
	"github.com/spec-kit/estate-navigator/internal/domain"
	"github.com/spec-kit/estate-navigator/internal/session"
)

// NavigateRequest payload for POST /sessions/:id/navigate.
type NavigateRequest struct {
	Page string `json:"page"`
}

// AccountTypeRequest payload for selecting the account type.
type AccountTypeRequest struct {
	AccountType string `json:"account_type"`
}

// LoginRequest payload for the credential form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for the sign-up form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest payload for the reset request form.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// ViewResponse is the render instruction returned after every call.
type ViewResponse struct {
	SessionID   string             `json:"session_id"`
	Page        domain.PageID      `json:"page"`
	View        domain.View        `json:"view"`
	Param       *string            `json:"param,omitempty"`
	Denied      bool               `json:"denied"`
	Requested   domain.View        `json:"requested_view"`
	Role        domain.Role        `json:"role"`
	ScrollEpoch uint64             `json:"scroll_epoch"`
	Auth        *authflow.Snapshot `json:"auth,omitempty"`
}

// NewViewResponse flattens a rendered view for the client.
func NewViewResponse(sessionID string, r session.Rendered) ViewResponse {
	resp := ViewResponse{
		SessionID:   sessionID,
		Page:        r.Requested.Page,
		View:        r.View.View,
		Denied:      r.Denied,
		Requested:   r.Requested.View,
		Role:        r.Role,
		ScrollEpoch: r.ScrollEpoch,
		Auth:        r.Auth,
	}
	if r.View.HasParam {
		param := r.View.Param
		resp.Param = &param
	}
	return resp
}
