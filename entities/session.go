package entities

// Session carries the credentials issued by the external auth service.
// Both fields are stored and cleared together: a session with only one of
// them set is a defect.
type Session struct {
	UserID    int    `json:"user_id"`
	AuthToken string `json:"auth_token"`
}

func (s Session) Authenticated() bool {
	return s.UserID > 0 && s.AuthToken != ""
}

// AuthedUser is the resolved identity returned by a successful
// RequireAuthenticated call.
type AuthedUser struct {
	UserID int
	Token  string
}
