package middleware

import (
	"errors"
	"net/http"
	"time"

	"skybook/internal/backend"
	"skybook/internal/shared/utils/response"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DisplayError is implemented by errors that carry their own user-facing
// text and status, such as a declined card.
type DisplayError interface {
	error
	UserMessage() string
	HTTPStatus() int
}

var redirectDelay = 3 * time.Second

// SetRedirectDelay configures the delay attached to redirect directives
func SetRedirectDelay(d time.Duration) {
	redirectDelay = d
}

// RedirectDelay returns the configured redirect delay
func RedirectDelay() time.Duration {
	return redirectDelay
}

// RespondError writes err in the standard envelope. fallback is used when err
// carries no user-facing text of its own. A backend 401 also drops the
// session identity so the shell can prompt for a new login.
func RespondError(c *gin.Context, err error, fallback string) {
	var (
		verr *validation.Error
		derr DisplayError
		berr *backend.Error
	)

	switch {
	case errors.As(err, &verr):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, verr.Fields)

	case errors.Is(err, wizard.ErrIncompleteState):
		response.RespondJSON(c, "error", http.StatusConflict,
			"Booking details are missing. Redirecting to home...",
			gin.H{"redirect": wizard.HomeRedirect(redirectDelay)}, err.Error())

	case errors.As(err, &derr):
		response.RespondJSON(c, "error", derr.HTTPStatus(), derr.UserMessage(), nil, nil)

	case errors.As(err, &berr):
		respondBackendError(c, berr)

	default:
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}

func respondBackendError(c *gin.Context, err *backend.Error) {
	message := backend.UserMessage(err)

	switch err.Kind {
	case backend.KindUnauthorized:
		sess := CurrentSession(c)
		sess.ClearIdentity()
		logger.GetDefault().LogAuthFailure(c.Request.Context(), "backend rejected token", c.ClientIP())
		response.RespondJSON(c, "error", http.StatusUnauthorized, message, gin.H{
			"relogin":  true,
			"redirect": wizard.Redirect{To: "/login", AfterMs: redirectDelay.Milliseconds()},
		}, nil)
	case backend.KindForbidden:
		response.RespondJSON(c, "error", http.StatusForbidden, message, nil, nil)
	case backend.KindNotFound:
		response.RespondJSON(c, "error", http.StatusNotFound, message, nil, nil)
	case backend.KindValidation:
		response.RespondJSON(c, "error", http.StatusBadRequest, message, nil, nil)
	case backend.KindTimeout:
		response.RespondJSON(c, "error", http.StatusGatewayTimeout, message, nil, nil)
	case backend.KindCancelled:
		// 499: the client went away, nobody reads this
		response.RespondJSON(c, "error", 499, message, nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadGateway, message, nil, nil)
	}
}
