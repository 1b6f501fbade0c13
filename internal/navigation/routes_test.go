package navigation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolverRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		table RouteTable
	}{
		{
			name:  "duplicate page",
			table: RouteTable{Static: []StaticRoute{{Page: "home", View: "home"}, {Page: "home", View: "other"}}},
		},
		{
			name:  "unknown role",
			table: RouteTable{Static: []StaticRoute{{Page: "a", View: "a", Roles: []string{"superuser"}}}},
		},
		{
			name:  "reserved logout",
			table: RouteTable{Static: []StaticRoute{{Page: "logout", View: "logout"}}},
		},
		{
			name:  "missing view",
			table: RouteTable{Static: []StaticRoute{{Page: "a"}}},
		},
		{
			name: "page shadows prefix",
			table: RouteTable{
				Static:   []StaticRoute{{Page: "admin-edit-", View: "editor-index"}},
				Prefixes: []PrefixRoute{{Prefix: "admin-edit-", View: "admin-page-editor"}},
			},
		},
		{
			name:  "overlapping prefixes",
			table: RouteTable{Prefixes: []PrefixRoute{{Prefix: "admin-", View: "a"}, {Prefix: "admin-edit-", View: "b"}}},
		},
		{
			name:  "identical prefixes",
			table: RouteTable{Prefixes: []PrefixRoute{{Prefix: "x-", View: "a"}, {Prefix: "x-", View: "b"}}},
		},
		{
			name:  "empty prefix",
			table: RouteTable{Prefixes: []PrefixRoute{{Prefix: "", View: "a"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.table)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRouteTable), err.Error())
		})
	}
}

func TestDecodeRouteTable(t *testing.T) {
	doc := `
static:
  - {page: home, view: home}
  - {page: vault, view: vault, roles: [administrator]}
prefixes:
  - {prefix: "doc-", view: doc, roles: [editor]}
`
	table, err := DecodeRouteTable(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, table.Static, 2)
	require.Len(t, table.Prefixes, 1)

	r, err := NewResolver(table)
	require.NoError(t, err)
	assert.Equal(t, "intro", r.Resolve("doc-intro").Param)
	assert.True(t, r.Resolve("vault").Restricted())
}

func TestDecodeRouteTableRejectsUnknownFields(t *testing.T) {
	_, err := DecodeRouteTable(strings.NewReader("static:\n  - {page: home, view: home, role: admin}\n"))
	assert.Error(t, err)
}

func TestLoadRouteTable(t *testing.T) {
	embedded, err := LoadRouteTable("")
	require.NoError(t, err)
	assert.NotEmpty(t, embedded.Static)

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("static:\n  - {page: home, view: landing}\n"), 0o600))

	table, err := LoadRouteTable(path)
	require.NoError(t, err)
	require.Len(t, table.Static, 1)
	assert.Equal(t, "landing", string(table.Static[0].View))

	_, err = LoadRouteTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
