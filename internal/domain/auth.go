package domain

// AuthFlowState is the active step of the login view's state machine.
type AuthFlowState string

const (
	AuthStateCredentialEntry      AuthFlowState = "credential-entry"
	AuthStateRegistration         AuthFlowState = "registration"
	AuthStatePasswordResetRequest AuthFlowState = "password-reset-request"
	AuthStateVerificationPending  AuthFlowState = "identity-verification-pending"
)

// AccountType is the account kind selected on the login and registration forms.
type AccountType string

const (
	AccountBuyer         AccountType = "buyer"
	AccountAgent         AccountType = "agent"
	AccountAgency        AccountType = "agency"
	AccountDeveloper     AccountType = "developer"
	AccountAdministrator AccountType = "administrator"
	AccountEditor        AccountType = "editor"
)

// AccountTypes lists the selectable account types; the first entry is the default.
func AccountTypes() []AccountType {
	return []AccountType{AccountBuyer, AccountAgent, AccountAgency, AccountDeveloper, AccountAdministrator, AccountEditor}
}

// Valid reports whether the account type is one of the selectable values.
func (a AccountType) Valid() bool {
	for _, t := range AccountTypes() {
		if t == a {
			return true
		}
	}
	return false
}

// Role returns the role adopted after a successful sign-in with this account type.
// Unknown values fall back to buyer, matching the form's default option.
func (a AccountType) Role() Role {
	switch a {
	case AccountAgent:
		return RoleAgent
	case AccountAgency:
		return RoleAgency
	case AccountDeveloper:
		return RoleDeveloper
	case AccountAdministrator:
		return RoleAdministrator
	case AccountEditor:
		return RoleEditor
	default:
		return RoleBuyer
	}
}
