package domain

const (
	RoleBorrower = "borrower"
	RoleLender   = "lender"
)

// Session is the signed blob the portal hands to the browser after login.
// Token is the backend bearer token obtained during the credential exchange;
// VisitID keys the server-side navigation state for this browser session.
type Session struct {
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	VisitID string `json:"visit_id"`
}

func (s Session) LoggedIn() bool {
	return s.UserID != 0 && s.Role != ""
}

// ValidRole reports whether the portal knows the role. The backend also
// issues a "reviewer" role; the portal only serves borrower and lender
// sessions.
func ValidRole(role string) bool {
	return role == RoleBorrower || role == RoleLender
}
