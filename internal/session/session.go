package session

import (
	"time"

	"skybook/internal/backend"
)

// Role values the backend issues in its tokens
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Session is the server-side identity record for one browser. Token and User
// are written together on login and cleared together on logout, expiry or a
// backend 401.
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token,omitempty"`
	User      *backend.User `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Role returns the role claimed by the stored token, falling back to the
// stored user record. Empty for anonymous sessions.
func (s *Session) Role() string {
	if !s.IsAuthenticated() {
		return ""
	}
	if claims, err := DecodeToken(s.Token); err == nil && claims.Role != "" {
		return claims.Role
	}
	if s.User != nil {
		return s.User.Role
	}
	return ""
}

// IsAdminHint decides whether admin controls are rendered. It is never used
// to reject a request; the backend answers 401/403 for that.
func (s *Session) IsAdminHint() bool {
	return s.Role() == RoleAdmin
}

func (s *Session) UserID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	if claims, err := DecodeToken(s.Token); err == nil {
		if id := claims.AccountID(); id != "" {
			return id
		}
	}
	if s.User != nil {
		return s.User.ID
	}
	return ""
}

// SetIdentity stores token and user as one unit
func (s *Session) SetIdentity(token string, user backend.User) {
	s.Token = token
	s.User = &user
}

// ClearIdentity drops token and user as one unit
func (s *Session) ClearIdentity() {
	s.Token = ""
	s.User = nil
}

// HomePath is where a freshly logged-in user lands
func (s *Session) HomePath() string {
	if s.IsAdminHint() {
		return "/admin"
	}
	return "/home"
}
