package domain

import "fmt"

// Role enumerates the permission identity attached to a session.
type Role string

const (
	RoleGuest         Role = "guest"
	RoleBuyer         Role = "buyer"
	RoleAgent         Role = "agent"
	RoleAgency        Role = "agency"
	RoleDeveloper     Role = "developer"
	RoleAdministrator Role = "administrator"
	RoleEditor        Role = "editor"
)

// Roles returns every known role in declaration order.
func Roles() []Role {
	return []Role{RoleGuest, RoleBuyer, RoleAgent, RoleAgency, RoleDeveloper, RoleAdministrator, RoleEditor}
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(raw string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// RoleSet is an unordered set of roles. A nil or empty set means unrestricted.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	if len(roles) == 0 {
		return nil
	}
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Empty reports whether the set places no restriction.
func (s RoleSet) Empty() bool {
	return len(s) == 0
}

// Contains reports exact membership. There is no hierarchy between roles.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Slice returns the members in declaration order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range Roles() {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
