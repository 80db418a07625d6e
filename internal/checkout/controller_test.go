package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skybook/internal/backend"
	"skybook/internal/payment"
	"skybook/internal/session"
	"skybook/internal/shared/middleware"
	"skybook/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateIntent(ctx context.Context, sess *session.Session) (*IntentResponse, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IntentResponse), args.Error(1)
}

func (m *MockService) Pay(ctx context.Context, sess *session.Session, req PayRequest) (*wizard.ConfirmationInput, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.ConfirmationInput), args.Error(1)
}

func (m *MockService) Confirmation(ctx context.Context, sess *session.Session) (*wizard.ConfirmationInput, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.ConfirmationInput), args.Error(1)
}

func setupTestRouter(svc Service, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetSession(c, sess)
		c.Next()
	})
	SetupCheckoutRoutes(r.Group("/api/v1"), NewController(svc))
	return r
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

func TestController_Pay(t *testing.T) {
	confirmed := &wizard.ConfirmationInput{Booking: &backend.Booking{ID: "b1"}, PaymentIntentID: "pi_1"}
	pending := &wizard.ConfirmationInput{Booking: &backend.Booking{ID: "b1"}, PaymentRecordPending: true}

	tests := []struct {
		name       string
		result     *wizard.ConfirmationInput
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"confirmed", confirmed, nil, http.StatusCreated, "Booking confirmed"},
		{"record pending", pending, nil, http.StatusCreated, "Booking confirmed. Payment record is pending."},
		{
			name:       "declined message verbatim",
			err:        &payment.ProcessorError{Message: "Your card has insufficient funds.", Code: "card_declined"},
			wantStatus: http.StatusPaymentRequired,
			wantMsg:    "Your card has insufficient funds.",
		},
		{
			name:       "session expired",
			err:        &backend.Error{Kind: backend.KindUnauthorized, StatusCode: 401},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Your session has expired. Please log in again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			sess := &session.Session{ID: "s1", Token: "tok", User: &backend.User{ID: "u1"}}
			router := setupTestRouter(svc, sess)

			req := PayRequest{PaymentMethodID: "pm_1"}
			if tt.result != nil {
				svc.On("Pay", mock.Anything, sess, req).Return(tt.result, nil)
			} else {
				svc.On("Pay", mock.Anything, sess, req).Return(nil, tt.err)
			}

			httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/booking/pay", strings.NewReader(`{"paymentMethodId":"pm_1"}`))
			httpReq.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httpReq)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decode(t, rec).Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestController_PayUnauthorizedClearsIdentity(t *testing.T) {
	svc := new(MockService)
	sess := &session.Session{ID: "s1", Token: "tok", User: &backend.User{ID: "u1"}}
	router := setupTestRouter(svc, sess)
	svc.On("Pay", mock.Anything, sess, mock.Anything).Return(nil, &backend.Error{Kind: backend.KindUnauthorized, StatusCode: 401})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/pay", strings.NewReader(`{"paymentMethodId":"pm_1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, sess.IsAuthenticated())

	var data struct {
		Relogin bool `json:"relogin"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.True(t, data.Relogin)
}

func TestController_ConfirmationWithoutBookingIsPlaceholder(t *testing.T) {
	svc := new(MockService)
	sess := &session.Session{ID: "s1"}
	router := setupTestRouter(svc, sess)
	svc.On("Confirmation", mock.Anything, sess).Return(nil, wizard.ErrIncompleteState)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/confirmation", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data ConfirmationResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.True(t, data.Placeholder)
	require.NotNil(t, data.Redirect)
	assert.Equal(t, "/home", data.Redirect.To)
}

func TestController_CreateIntent(t *testing.T) {
	svc := new(MockService)
	sess := &session.Session{ID: "s1"}
	router := setupTestRouter(svc, sess)
	svc.On("CreateIntent", mock.Anything, sess).Return(&IntentResponse{ClientSecret: "pi_1_secret_x", Amount: 300, Currency: "usd"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/payment-intent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var data IntentResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "pi_1_secret_x", data.ClientSecret)
}
