package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/config"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSessionConfig = config.SessionConfig{
	CookieName: "skybook_sid",
	HeaderName: "X-Session-ID",
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// setupSessionRouter mounts the session middleware in front of handler
func setupSessionRouter(store session.Store, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(store, testSessionConfig, time.Hour))
	r.GET("/probe", handler)
	return r
}

func TestSession_NewVisitorGetsPersistedSession(t *testing.T) {
	store := session.NewStore(cache.NewMemoryService(), time.Hour)
	var seen string
	r := setupSessionRouter(store, func(c *gin.Context) {
		sess := CurrentSession(c)
		seen = sess.ID
		sess.SetIdentity("opaque", backend.User{ID: "u1", Role: session.RoleCustomer})
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Session-ID"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "skybook_sid", cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	// Changes made by the handler are saved once it returns
	stored, err := store.Load(context.Background(), seen)
	require.NoError(t, err)
	assert.Equal(t, "opaque", stored.Token)
	require.NotNil(t, stored.User)
	assert.Equal(t, "u1", stored.User.ID)
}

func TestSession_LoadsExistingSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(cache.NewMemoryService(), time.Hour)

	fromCookie := store.New()
	fromCookie.SetIdentity("opaque", backend.User{ID: "u-cookie", Role: session.RoleCustomer})
	require.NoError(t, store.Save(ctx, fromCookie))

	fromHeader := store.New()
	fromHeader.SetIdentity("opaque", backend.User{ID: "u-header", Role: session.RoleAdmin})
	require.NoError(t, store.Save(ctx, fromHeader))

	tests := []struct {
		name     string
		cookie   string
		header   string
		wantID   string
		wantUser string
	}{
		{name: "cookie", cookie: fromCookie.ID, wantID: fromCookie.ID, wantUser: "u-cookie"},
		{name: "header", header: fromHeader.ID, wantID: fromHeader.ID, wantUser: "u-header"},
		{name: "header wins over cookie", cookie: fromCookie.ID, header: fromHeader.ID, wantID: fromHeader.ID, wantUser: "u-header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID, gotUser string
			r := setupSessionRouter(store, func(c *gin.Context) {
				gotID = CurrentSession(c).ID
				gotUser = c.GetString("user_id")
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "skybook_sid", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("X-Session-ID", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantID, gotID)
			assert.Equal(t, tt.wantUser, gotUser)
			assert.Equal(t, tt.wantID, rec.Header().Get("X-Session-ID"))
		})
	}
}

func TestSession_UnknownIDStartsFreshSession(t *testing.T) {
	store := session.NewStore(cache.NewMemoryService(), time.Hour)
	var got *session.Session
	r := setupSessionRouter(store, func(c *gin.Context) {
		got = CurrentSession(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "skybook_sid", Value: "made-up"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.NotEqual(t, "made-up", got.ID)
	assert.False(t, got.IsAuthenticated())
	assert.Equal(t, got.ID, rec.Header().Get("X-Session-ID"))
}

// brokenStore fails every load the way an unreachable Redis does
type brokenStore struct {
	session.Store
}

func (brokenStore) Load(ctx context.Context, id string) (*session.Session, error) {
	return nil, errors.New("connection refused")
}

func TestSession_StoreFailureAborts(t *testing.T) {
	called := false
	r := setupSessionRouter(brokenStore{}, func(c *gin.Context) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Session-ID", "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Session store unavailable", decode(t, rec).Message)
}

func TestControlsFor(t *testing.T) {
	tests := []struct {
		name string
		sess *session.Session
		want bool
	}{
		{name: "anonymous", sess: &session.Session{ID: "s"}, want: false},
		{name: "customer", sess: &session.Session{ID: "s", Token: "opaque", User: &backend.User{Role: session.RoleCustomer}}, want: false},
		{name: "admin", sess: &session.Session{ID: "s", Token: "opaque", User: &backend.User{Role: session.RoleAdmin}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			SetSession(c, tt.sess)
			assert.Equal(t, tt.want, ControlsFor(c).CanManage)
		})
	}
}

type declined struct{}

func (declined) Error() string       { return "card_declined" }
func (declined) UserMessage() string { return "Your card was declined." }
func (declined) HTTPStatus() int     { return http.StatusPaymentRequired }

func backendError(kind backend.ErrorKind, status int) error {
	return fmt.Errorf("list flights: %w", &backend.Error{Kind: kind, StatusCode: status, Method: http.MethodGet, Path: "/api/flights"})
}

func TestRespondError(t *testing.T) {
	SetRedirectDelay(2 * time.Second)
	t.Cleanup(func() { SetRedirectDelay(3 * time.Second) })

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantData    string
		wantCleared bool
	}{
		{
			name:       "validation",
			err:        &validation.Error{Fields: map[string]string{"email": "email is required"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "incomplete wizard state",
			err:         fmt.Errorf("%w: no flight selected", wizard.ErrIncompleteState),
			wantStatus:  http.StatusConflict,
			wantMessage: "Booking details are missing. Redirecting to home...",
			wantData:    `{"redirect":{"to":"/home","afterMs":2000}}`,
		},
		{
			name:        "display error",
			err:         fmt.Errorf("confirm: %w", declined{}),
			wantStatus:  http.StatusPaymentRequired,
			wantMessage: "Your card was declined.",
		},
		{
			name:        "backend unauthorized",
			err:         backendError(backend.KindUnauthorized, 401),
			wantStatus:  http.StatusUnauthorized,
			wantData:    `{"relogin":true,"redirect":{"to":"/login","afterMs":2000}}`,
			wantCleared: true,
		},
		{name: "backend forbidden", err: backendError(backend.KindForbidden, 403), wantStatus: http.StatusForbidden},
		{name: "backend not found", err: backendError(backend.KindNotFound, 404), wantStatus: http.StatusNotFound},
		{name: "backend validation", err: backendError(backend.KindValidation, 422), wantStatus: http.StatusBadRequest},
		{name: "backend timeout", err: backendError(backend.KindTimeout, 0), wantStatus: http.StatusGatewayTimeout},
		{name: "client cancelled", err: backendError(backend.KindCancelled, 0), wantStatus: 499},
		{name: "backend server", err: backendError(backend.KindServer, 500), wantStatus: http.StatusBadGateway},
		{name: "no response", err: backendError(backend.KindNoResponse, 0), wantStatus: http.StatusBadGateway},
		{
			name:        "unclassified",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			sess := &session.Session{ID: "s", Token: "opaque", User: &backend.User{ID: "u1"}}
			r := gin.New()
			r.GET("/probe", func(c *gin.Context) {
				SetSession(c, sess)
				RespondError(c, tt.err, "Something went wrong")
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, string(env.Data))
			}
			assert.Equal(t, !tt.wantCleared, sess.IsAuthenticated())
		})
	}
}
