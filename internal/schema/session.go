package schema

// Session represents the authenticated account, set by auth middleware
// and threaded explicitly into every handler. Never read from ambient
// global state.
type Session struct {
	Account string `json:"account"` // login name
	Role    string `json:"role"`
}

// IsAdmin reports whether the session belongs to the Admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
