package auth

import "skybook/internal/backend"

// represents the login response; the token stays in the session
type LoginResponse struct {
	User       backend.User `json:"user"`
	Role       string       `json:"role"`
	RedirectTo string       `json:"redirectTo"`
}

// represents the current session identity
type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *backend.User `json:"user,omitempty"`
	Role          string        `json:"role,omitempty"`
	IsAdmin       bool          `json:"isAdmin"`
	HomePath      string        `json:"homePath"`
}

type UserListResponse struct {
	Users []backend.User `json:"users"`
	Count int            `json:"count"`
}
