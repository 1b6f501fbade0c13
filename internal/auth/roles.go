package auth

import "github.com/spec-kit/estate-navigator/internal/domain"

// Authorize gates a resolved view against the current role. Unrestricted
// descriptors are always granted; restricted ones are granted only to roles
// they list explicitly. On denial the access-denied descriptor is returned.
func Authorize(desc domain.ViewDescriptor, role domain.Role) (domain.ViewDescriptor, bool) {
	if !desc.Restricted() {
		return desc, true
	}
	if desc.RequiredRoles.Contains(role) {
		return desc, true
	}
	return domain.AccessDeniedDescriptor(), false
}

// Allowed reports whether role may see desc without building the outcome.
func Allowed(desc domain.ViewDescriptor, role domain.Role) bool {
	_, ok := Authorize(desc, role)
	return ok
}
