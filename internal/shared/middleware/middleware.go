package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"skybook/internal/session"
	"skybook/internal/shared/config"
	"skybook/internal/shared/utils/response"
	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// Session loads the caller's session from the cookie (or the header used by
// non-browser clients), creating one when absent, and saves it once the
// handler chain has finished. Handlers mutate the *session.Session in place.
func Session(store session.Store, cfg config.SessionConfig, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id := c.GetHeader(cfg.HeaderName)
		if id == "" {
			id, _ = c.Cookie(cfg.CookieName)
		}

		sess, err := store.Load(ctx, id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.GetDefault().ErrorWithContext(ctx, "Failed to load session", err, map[string]interface{}{
					"session_id": id,
				})
				response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Session store unavailable", nil, nil)
				c.Abort()
				return
			}
			sess = store.New()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sess.ID, int(ttl.Seconds()), "/", "", cfg.CookieSecure, true)
		c.Header(cfg.HeaderName, sess.ID)

		SetSession(c, sess)
		if sess.IsAuthenticated() {
			c.Set("user_id", sess.UserID())
			c.Set("user_role", sess.Role())
			if sess.User != nil {
				c.Set("user_email", sess.User.Email)
			}
		}

		c.Next()

		// Use a context that survives the client disconnecting mid-request
		if err := store.Save(context.WithoutCancel(ctx), sess); err != nil {
			logger.GetDefault().WithSessionID(sess.ID).WithError(err).ErrorContext(ctx, "Failed to save session")
		}
	}
}

// SetSession attaches sess to the request
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionContextKey, sess)
}

// CurrentSession returns the session loaded by Session. Handlers mounted
// without the middleware get a throwaway anonymous session.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	sess := &session.Session{}
	c.Set(sessionContextKey, sess)
	return sess
}

// Controls is the rendering hint attached to admin list responses. It only
// decides which buttons the shell shows; the backend still authorizes every
// mutation.
type Controls struct {
	CanManage bool `json:"canManage"`
}

func ControlsFor(c *gin.Context) Controls {
	return Controls{CanManage: CurrentSession(c).IsAdminHint()}
}
