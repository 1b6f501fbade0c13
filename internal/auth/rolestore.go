package auth

import "github.com/spec-kit/estate-navigator/internal/domain"

// RoleStore holds the role of a single session. It starts as guest and is
// only changed by sign-in and logout.
type RoleStore struct {
	role domain.Role
}

// NewRoleStore returns a store holding the guest role.
func NewRoleStore() *RoleStore {
	return &RoleStore{role: domain.RoleGuest}
}

// SetRole replaces the active role unconditionally.
func (s *RoleStore) SetRole(role domain.Role) {
	s.role = role
}

// CurrentRole returns the active role.
func (s *RoleStore) CurrentRole() domain.Role {
	if s.role == "" {
		return domain.RoleGuest
	}
	return s.role
}

// Reset returns the store to guest.
func (s *RoleStore) Reset() {
	s.SetRole(domain.RoleGuest)
}
