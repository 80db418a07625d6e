package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/middleware"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, entry *AuditEntry) error {
	return errors.New("db down")
}

func (failingRepo) List(ctx context.Context, q ListQuery) ([]AuditEntry, error) {
	return nil, errors.New("db down")
}

type fakeVerifier struct {
	err error
}

func (f fakeVerifier) ListUsers(ctx context.Context, token string) ([]backend.User, error) {
	return nil, f.err
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, kind := range []Kind{KindPassengerPlaceholder, KindBookingPaymentFailed, KindPassengerPlaceholder} {
		require.NoError(t, repo.Create(ctx, entryFromEvent(Event{Kind: kind, OccurredAt: base.Add(time.Duration(i) * time.Minute)})))
	}

	all, err := repo.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, base.Add(2*time.Minute), all[0].OccurredAt)

	placeholders, err := repo.List(ctx, ListQuery{Kind: KindPassengerPlaceholder, Limit: 1})
	require.NoError(t, err)
	require.Len(t, placeholders, 1)
	assert.Equal(t, KindPassengerPlaceholder, placeholders[0].Kind)
}

func TestKafkaPublisher_KeysByBooking(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "b1" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "skybook.audit" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "skybook.audit")
	err := pub.Publish(context.Background(), Event{Kind: KindBookingPaymentFailed, BookingID: "b1", SessionID: "s1"})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestLedgerRecorder_StoresAndPublishes(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()

	repo := NewMemoryRepository()
	rec := NewLedgerRecorder(repo, NewKafkaPublisherWithProducer(producer, "skybook.audit"))
	rec.Record(context.Background(), Event{Kind: KindPaymentRecordFailed, BookingID: "b1"})

	entries, err := repo.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OccurredAt.IsZero())
	require.NoError(t, producer.Close())
}

func TestLedgerRecorder_StoreFailureStillPublishes(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()

	rec := NewLedgerRecorder(failingRepo{}, NewKafkaPublisherWithProducer(producer, "skybook.audit"))
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), Event{Kind: KindPassengerPlaceholder})
	})
	require.NoError(t, producer.Close())
}

func setupTestRouter(svc Service, sess *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetSession(c, sess)
		c.Next()
	})
	SetupAuditRoutes(r.Group("/api/v1"), NewController(svc))
	return r
}

func TestController_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, entryFromEvent(Event{Kind: KindBookingPaymentFailed, BookingID: "b1"})))
	require.NoError(t, repo.Create(ctx, entryFromEvent(Event{Kind: KindPassengerPlaceholder})))

	tests := []struct {
		name       string
		verifyErr  error
		wantStatus int
		wantCount  int
	}{
		{"backend accepts token", nil, http.StatusOK, 1},
		{"backend forbids", &backend.Error{Kind: backend.KindForbidden, StatusCode: 403}, http.StatusForbidden, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(NewService(repo, fakeVerifier{err: tt.verifyErr}), &session.Session{ID: "s1", Token: "opaque"})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit?kind=booking_payment_failed", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var env struct {
					Data ListResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
				assert.Equal(t, tt.wantCount, env.Data.Count)
				assert.Equal(t, "b1", env.Data.Entries[0].BookingID)
			}
		})
	}
}

type countingVerifier struct {
	calls int
}

func (v *countingVerifier) ListUsers(ctx context.Context, token string) ([]backend.User, error) {
	v.calls++
	return nil, nil
}

func TestController_ListRejectsMalformedQuery(t *testing.T) {
	verifier := &countingVerifier{}
	router := setupTestRouter(NewService(NewMemoryRepository(), verifier), &session.Session{ID: "s1", Token: "opaque"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit?limit=lots", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Invalid query parameters", env.Message)
	assert.Zero(t, verifier.calls)
}
