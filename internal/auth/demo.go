package auth

import "github.com/spec-kit/estate-navigator/internal/domain"

// Credentials are the values typed into the login form.
type Credentials struct {
	Email    string
	Password string
}

// demoCredentials pre-fill the login form for showcase accounts. They are not
// checked against anything.
var demoCredentials = map[domain.AccountType]Credentials{
	domain.AccountAdministrator: {Email: "admin@estate.demo", Password: "admin-demo"},
	domain.AccountEditor:        {Email: "editor@estate.demo", Password: "editor-demo"},
}

// DemoCredentials returns the showcase credentials for an account type, if any.
func DemoCredentials(t domain.AccountType) (Credentials, bool) {
	c, ok := demoCredentials[t]
	return c, ok
}
