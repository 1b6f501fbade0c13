package domain

// PageID is the token a view passes to navigate. It is either a static token or
// a prefix followed by an embedded parameter.
type PageID string

// Reserved token intercepted by the navigation controller.
const PageLogout PageID = "logout"

// Static page tokens.
const (
	PageHome              PageID = "home"
	PageLogin             PageID = "login"
	PageForgotPassword    PageID = "forgot-password"
	PageResetPassword     PageID = "reset-password"
	PageEmailVerification PageID = "email-verification"
	PageAccessDenied      PageID = "access-denied"
	PageEditorRegister    PageID = "editor-register"

	PageAdminDashboard     PageID = "admin-dashboard"
	PageAgentVerification  PageID = "agent-verification"
	PageAgentDashboard     PageID = "agent-dashboard"
	PageAgencyDashboard    PageID = "agency-dashboard"
	PageDeveloperDashboard PageID = "developer-dashboard"
	PageUserDashboard      PageID = "user-dashboard"
)

// Prefix families. Each prefix is followed by the embedded parameter.
const (
	PrefixAdminEdit        = "admin-edit-"
	PrefixAdminSiteOptions = "admin-site-options-"
)

// View identifies the component a descriptor instantiates.
type View string

const (
	ViewNotFound     View = "not-found"
	ViewAccessDenied View = "access-denied"
)

// ViewDescriptor is the resolved form of a PageID.
type ViewDescriptor struct {
	Page          PageID  `json:"page"`
	View          View    `json:"view"`
	Param         string  `json:"param,omitempty"`
	HasParam      bool    `json:"has_param"`
	RequiredRoles RoleSet `json:"-"`
}

// Restricted reports whether the descriptor enumerates permitted roles.
func (d ViewDescriptor) Restricted() bool {
	return !d.RequiredRoles.Empty()
}

// NotFoundDescriptor is returned for tokens that match no route.
func NotFoundDescriptor(page PageID) ViewDescriptor {
	return ViewDescriptor{Page: page, View: ViewNotFound}
}

// AccessDeniedDescriptor replaces a view the current role may not see.
func AccessDeniedDescriptor() ViewDescriptor {
	return ViewDescriptor{Page: PageAccessDenied, View: ViewAccessDenied}
}
