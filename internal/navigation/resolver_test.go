package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/estate-navigator/internal/auth"
	"github.com/spec-kit/estate-navigator/internal/domain"
)

func newDefaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewDefaultResolver()
	require.NoError(t, err)
	return r
}

func TestResolveStaticPages(t *testing.T) {
	r := newDefaultResolver(t)

	table, err := DefaultRouteTable()
	require.NoError(t, err)
	require.NotEmpty(t, table.Static)

	for _, route := range table.Static {
		desc := r.Resolve(route.Page)
		assert.Equal(t, route.Page, desc.Page)
		assert.Equal(t, route.View, desc.View, string(route.Page))
		assert.False(t, desc.HasParam, string(route.Page))
		assert.Empty(t, desc.Param)
		assert.Equal(t, len(route.Roles), len(desc.RequiredRoles), string(route.Page))
	}
}

func TestResolveKnownTokens(t *testing.T) {
	r := newDefaultResolver(t)

	pages := []domain.PageID{
		domain.PageHome, domain.PageLogin, domain.PageForgotPassword, domain.PageResetPassword,
		domain.PageEmailVerification, domain.PageAccessDenied, domain.PageEditorRegister,
		domain.PageAdminDashboard, domain.PageAgentVerification, domain.PageAgentDashboard,
		domain.PageAgencyDashboard, domain.PageDeveloperDashboard, domain.PageUserDashboard,
	}
	for _, p := range pages {
		assert.NotEqual(t, domain.ViewNotFound, r.Resolve(p).View, string(p))
	}

	admin := r.Resolve(domain.PageAdminDashboard)
	assert.True(t, admin.RequiredRoles.Contains(domain.RoleAdministrator))
	assert.True(t, admin.RequiredRoles.Contains(domain.RoleEditor))
	assert.False(t, r.Resolve(domain.PageHome).Restricted())
}

func TestResolvePrefixes(t *testing.T) {
	r := newDefaultResolver(t)
	suffixes := []string{"", "about", "contact-us", "admin-edit-nested", "Home", " spaced "}

	for _, prefix := range []string{domain.PrefixAdminEdit, domain.PrefixAdminSiteOptions} {
		for _, s := range suffixes {
			desc := r.Resolve(domain.PageID(prefix + s))
			assert.True(t, desc.HasParam, prefix+s)
			assert.Equal(t, s, desc.Param, prefix+s)
			assert.NotEqual(t, domain.ViewNotFound, desc.View)
			assert.True(t, desc.Restricted())
		}
	}
}

func TestResolveAdminEditParameter(t *testing.T) {
	r := newDefaultResolver(t)

	desc := r.Resolve("admin-edit-about")
	assert.Equal(t, domain.View("admin-page-editor"), desc.View)
	assert.Equal(t, "about", desc.Param)
	assert.True(t, desc.HasParam)
}

func TestResolveExactMatchBeatsPrefix(t *testing.T) {
	r := newDefaultResolver(t)

	desc := r.Resolve("admin-site-options")
	assert.Equal(t, domain.View("admin-site-options"), desc.View)
	assert.False(t, desc.HasParam)

	desc = r.Resolve("admin-site-options-seo")
	assert.Equal(t, domain.View("admin-site-option-category"), desc.View)
	assert.Equal(t, "seo", desc.Param)
}

func TestResolveNotFound(t *testing.T) {
	r := newDefaultResolver(t)

	for _, p := range []domain.PageID{"", "HOME", "unknown", "admin-edit", "admin-site-option", "logout", " home"} {
		desc := r.Resolve(p)
		assert.Equal(t, domain.ViewNotFound, desc.View, string(p))
		assert.Equal(t, p, desc.Page)
		assert.False(t, desc.HasParam)
		assert.False(t, desc.Restricted())
	}
}

func TestRestrictedDescriptorsGate(t *testing.T) {
	r := newDefaultResolver(t)

	tokens := append([]domain.PageID{}, r.Pages()...)
	for _, prefix := range r.Prefixes() {
		tokens = append(tokens, domain.PageID(prefix+"x"))
	}

	for _, p := range tokens {
		desc := r.Resolve(p)
		if !desc.Restricted() {
			continue
		}
		var positive, negative int
		for _, role := range domain.Roles() {
			_, ok := auth.Authorize(desc, role)
			assert.Equal(t, desc.RequiredRoles.Contains(role), ok, "%s as %s", p, role)
			if ok {
				positive++
			} else {
				negative++
			}
		}
		assert.Positive(t, positive, string(p))
		assert.Positive(t, negative, string(p))
	}
}

func TestEditorDeniedAdminOnlyViews(t *testing.T) {
	r := newDefaultResolver(t)

	for _, p := range []domain.PageID{"admin-users", "admin-settings", "admin-site-options", "admin-site-options-general"} {
		_, ok := auth.Authorize(r.Resolve(p), domain.RoleEditor)
		assert.False(t, ok, string(p))
		_, ok = auth.Authorize(r.Resolve(p), domain.RoleAdministrator)
		assert.True(t, ok, string(p))
	}
}

func TestPagesAndPrefixes(t *testing.T) {
	r := newDefaultResolver(t)

	pages := r.Pages()
	assert.Contains(t, pages, domain.PageHome)
	assert.NotContains(t, pages, domain.PageLogout)
	for i := 1; i < len(pages); i++ {
		assert.True(t, pages[i-1] < pages[i])
	}

	prefixes := r.Prefixes()
	require.Len(t, prefixes, 2)
	assert.True(t, len(prefixes[0]) >= len(prefixes[1]))
	for _, p := range prefixes {
		assert.True(t, strings.HasPrefix(p, "admin-"))
	}
}
