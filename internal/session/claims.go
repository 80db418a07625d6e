package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrMalformedToken = errors.New("malformed token")

// Claims are the fields read out of a backend token. The signature is not
// checked here; only the backend can verify it.
type Claims struct {
	Role   string `json:"role"`
	UserID string `json:"userId"`
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AccountID returns the user id from whichever claim the backend populated
func (c *Claims) AccountID() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.ID != "":
		return c.ID
	default:
		return c.RegisteredClaims.Subject
	}
}

// Expired reports whether exp is set and in the past
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// DecodeToken reads the payload of a JWT without verifying it
func DecodeToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}
