package navigation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/estate-navigator/internal/domain"
)

//go:embed routes.yaml
var defaultRoutes []byte

// ErrInvalidRouteTable is wrapped by every route table validation failure.
var ErrInvalidRouteTable = errors.New("invalid route table")

// StaticRoute maps one exact token to a view.
type StaticRoute struct {
	Page  domain.PageID `yaml:"page"`
	View  domain.View   `yaml:"view"`
	Roles []string      `yaml:"roles,omitempty"`
}

// PrefixRoute maps every token starting with Prefix to a parameterized view.
type PrefixRoute struct {
	Prefix string      `yaml:"prefix"`
	View   domain.View `yaml:"view"`
	Roles  []string    `yaml:"roles,omitempty"`
}

// RouteTable is the declarative form of the resolver's lookup data.
type RouteTable struct {
	Static   []StaticRoute `yaml:"static"`
	Prefixes []PrefixRoute `yaml:"prefixes"`
}

// DefaultRouteTable parses the embedded route table.
func DefaultRouteTable() (RouteTable, error) {
	return DecodeRouteTable(bytes.NewReader(defaultRoutes))
}

// LoadRouteTable reads a route table from path, or the embedded table when path is empty.
func LoadRouteTable(path string) (RouteTable, error) {
	if path == "" {
		return DefaultRouteTable()
	}
	f, err := os.Open(path)
	if err != nil {
		return RouteTable{}, fmt.Errorf("open route table: %w", err)
	}
	defer f.Close()
	return DecodeRouteTable(f)
}

// DecodeRouteTable parses a YAML route table.
func DecodeRouteTable(r io.Reader) (RouteTable, error) {
	var table RouteTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return RouteTable{}, fmt.Errorf("decode route table: %w", err)
	}
	return table, nil
}

func parseRoles(raw []string) (domain.RoleSet, error) {
	roles := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		role, err := domain.ParseRole(r)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return domain.NewRoleSet(roles...), nil
}

func (t RouteTable) validatePrefixes() error {
	for i, a := range t.Prefixes {
		if a.Prefix == "" {
			return fmt.Errorf("%w: empty prefix for view %q", ErrInvalidRouteTable, a.View)
		}
		for _, st := range t.Static {
			if string(st.Page) == a.Prefix {
				return fmt.Errorf("%w: page %q shadows prefix", ErrInvalidRouteTable, st.Page)
			}
		}
		for j, b := range t.Prefixes {
			if i == j {
				continue
			}
			if strings.HasPrefix(b.Prefix, a.Prefix) {
				return fmt.Errorf("%w: prefixes %q and %q overlap", ErrInvalidRouteTable, a.Prefix, b.Prefix)
			}
		}
	}
	return nil
}
