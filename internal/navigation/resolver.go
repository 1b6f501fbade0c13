package navigation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spec-kit/estate-navigator/internal/domain"
)

type staticEntry struct {
	view  domain.View
	roles domain.RoleSet
}

type prefixEntry struct {
	prefix string
	view   domain.View
	roles  domain.RoleSet
}

// Resolver maps page tokens to view descriptors. It is immutable after construction.
type Resolver struct {
	static   map[domain.PageID]staticEntry
	prefixes []prefixEntry
}

// NewResolver validates the table and builds a resolver from it.
func NewResolver(table RouteTable) (*Resolver, error) {
	if err := table.validatePrefixes(); err != nil {
		return nil, err
	}

	r := &Resolver{static: make(map[domain.PageID]staticEntry, len(table.Static))}
	for _, route := range table.Static {
		if route.Page == "" || route.View == "" {
			return nil, fmt.Errorf("%w: static route needs page and view", ErrInvalidRouteTable)
		}
		if route.Page == domain.PageLogout {
			return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidRouteTable, route.Page)
		}
		if _, dup := r.static[route.Page]; dup {
			return nil, fmt.Errorf("%w: duplicate page %q", ErrInvalidRouteTable, route.Page)
		}
		roles, err := parseRoles(route.Roles)
		if err != nil {
			return nil, fmt.Errorf("%w: page %q: %v", ErrInvalidRouteTable, route.Page, err)
		}
		r.static[route.Page] = staticEntry{view: route.View, roles: roles}
	}

	for _, route := range table.Prefixes {
		if route.View == "" {
			return nil, fmt.Errorf("%w: prefix %q has no view", ErrInvalidRouteTable, route.Prefix)
		}
		roles, err := parseRoles(route.Roles)
		if err != nil {
			return nil, fmt.Errorf("%w: prefix %q: %v", ErrInvalidRouteTable, route.Prefix, err)
		}
		r.prefixes = append(r.prefixes, prefixEntry{prefix: route.Prefix, view: route.View, roles: roles})
	}
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i].prefix) > len(r.prefixes[j].prefix)
	})
	return r, nil
}

// NewDefaultResolver builds a resolver from the embedded route table.
func NewDefaultResolver() (*Resolver, error) {
	table, err := DefaultRouteTable()
	if err != nil {
		return nil, err
	}
	return NewResolver(table)
}

// Resolve maps a token to its descriptor. Exact matches win over prefixes and
// anything unmatched resolves to the not-found view.
func (r *Resolver) Resolve(page domain.PageID) domain.ViewDescriptor {
	if entry, ok := r.static[page]; ok {
		return domain.ViewDescriptor{Page: page, View: entry.view, RequiredRoles: entry.roles}
	}
	raw := string(page)
	for _, p := range r.prefixes {
		if strings.HasPrefix(raw, p.prefix) {
			return domain.ViewDescriptor{
				Page:          page,
				View:          p.view,
				Param:         strings.TrimPrefix(raw, p.prefix),
				HasParam:      true,
				RequiredRoles: p.roles,
			}
		}
	}
	return domain.NotFoundDescriptor(page)
}

// Pages returns the registered static tokens, sorted.
func (r *Resolver) Pages() []domain.PageID {
	pages := make([]domain.PageID, 0, len(r.static))
	for p := range r.static {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })
	return pages
}

// Prefixes returns the registered prefixes, longest first.
func (r *Resolver) Prefixes() []string {
	out := make([]string, 0, len(r.prefixes))
	for _, p := range r.prefixes {
		out = append(out, p.prefix)
	}
	return out
}
