// Package session holds the client's persisted credentials: the access and
// refresh tokens handed out at login, and the role the server reported.
package session

const (
	RoleLibrarian = "Librarian"
	RoleMember    = "Member"
)

// Session is the full set of persisted credentials. An empty string means the
// field is absent; there is no half-present state because stores replace or
// clear all three fields together.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

// normalize enforces the one invariant the stores rely on: no role is trusted
// without an access token.
func (s Session) normalize() Session {
	if s.AccessToken == "" {
		s.Role = ""
	}
	return s
}

// IsZero reports whether every field is absent.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.Role == ""
}
