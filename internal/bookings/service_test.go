package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	ListBookingsFunc        func(ctx context.Context, token string) ([]backend.Booking, error)
	MyBookingsFunc          func(ctx context.Context, token string) ([]backend.Booking, error)
	UpdateBookingStatusFunc func(ctx context.Context, token, id string, status backend.BookingStatus) error
}

func (f *fakeBackend) ListBookings(ctx context.Context, token string) ([]backend.Booking, error) {
	return f.ListBookingsFunc(ctx, token)
}

func (f *fakeBackend) MyBookings(ctx context.Context, token string) ([]backend.Booking, error) {
	return f.MyBookingsFunc(ctx, token)
}

func (f *fakeBackend) UpdateBookingStatus(ctx context.Context, token, id string, status backend.BookingStatus) error {
	return f.UpdateBookingStatusFunc(ctx, token, id, status)
}

func sampleBookings() []backend.Booking {
	return []backend.Booking{
		{ID: "b1", BookingID: "SKY-001", CustomerName: "Ada Lovelace", Status: backend.BookingStatusPreparing, Flight: &backend.Flight{FlightNumber: "SK100"}},
		{ID: "b2", BookingID: "SKY-002", CustomerName: "Grace Hopper", Status: backend.BookingStatusConfirmed},
		{ID: "b3", BookingID: "SKY-003", CustomerName: "Alan Turing", Status: backend.BookingStatusPreparing},
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to backend.BookingStatus
		want     bool
	}{
		{backend.BookingStatusPreparing, backend.BookingStatusConfirmed, true},
		{backend.BookingStatusPreparing, backend.BookingStatusDeclined, true},
		{"", backend.BookingStatusConfirmed, true},
		{backend.BookingStatusPreparing, backend.BookingStatusCancelled, false},
		{backend.BookingStatusConfirmed, backend.BookingStatusDeclined, false},
		{backend.BookingStatusDeclined, backend.BookingStatusConfirmed, false},
		{backend.BookingStatusPreparing, backend.BookingStatusPreparing, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestFilterBookings(t *testing.T) {
	all := sampleBookings()

	assert.Len(t, FilterBookings(all, AdminListQuery{}), 3)
	assert.Len(t, FilterBookings(all, AdminListQuery{Status: "all"}), 3)
	assert.Len(t, FilterBookings(all, AdminListQuery{Status: "preparing"}), 2)

	got := FilterBookings(all, AdminListQuery{Q: "sk100"})
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	got = FilterBookings(all, AdminListQuery{Q: "sky-00", Status: "confirmed"})
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)
}

func TestPatchBookingStatus(t *testing.T) {
	all := sampleBookings()
	patched := PatchBookingStatus(all, "b3", backend.BookingStatusDeclined)

	assert.Equal(t, backend.BookingStatusDeclined, patched[2].Status)
	assert.Equal(t, backend.BookingStatusPreparing, patched[0].Status)
	assert.Equal(t, backend.BookingStatusConfirmed, patched[1].Status)
	// input untouched
	assert.Equal(t, backend.BookingStatusPreparing, all[2].Status)
}

func TestService_UpdateStatusPatchesRenderedList(t *testing.T) {
	ctx := context.Background()
	var forwarded backend.BookingStatus
	fb := &fakeBackend{
		ListBookingsFunc: func(ctx context.Context, token string) ([]backend.Booking, error) {
			return sampleBookings(), nil
		},
		UpdateBookingStatusFunc: func(ctx context.Context, token, id string, status backend.BookingStatus) error {
			forwarded = status
			return nil
		},
	}
	svc := NewService(fb, cache.NewMemoryService(), time.Minute)
	sess := &session.Session{ID: "s1", Token: "tok"}

	_, err := svc.AdminList(ctx, sess, AdminListQuery{})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, sess, "b1", UpdateStatusRequest{Status: backend.BookingStatusConfirmed})
	require.NoError(t, err)

	assert.Equal(t, backend.BookingStatusConfirmed, forwarded)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, backend.BookingStatusConfirmed, resp.Bookings[0].Status)
	assert.Equal(t, backend.BookingStatusPreparing, resp.Bookings[2].Status)

	// b1 is no longer preparing in the rendered list
	_, err = svc.UpdateStatus(ctx, sess, "b1", UpdateStatusRequest{Status: backend.BookingStatusDeclined})
	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "Booking is already confirmed", terr.UserMessage())
}

func TestService_UpdateStatusWithoutRenderedList(t *testing.T) {
	calls := 0
	fb := &fakeBackend{
		UpdateBookingStatusFunc: func(ctx context.Context, token, id string, status backend.BookingStatus) error {
			calls++
			return nil
		},
	}
	svc := NewService(fb, cache.NewMemoryService(), time.Minute)
	sess := &session.Session{ID: "s1", Token: "tok"}

	resp, err := svc.UpdateStatus(context.Background(), sess, "b9", UpdateStatusRequest{Status: backend.BookingStatusDeclined})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, 1, calls)

	_, err = svc.UpdateStatus(context.Background(), sess, "b9", UpdateStatusRequest{Status: backend.BookingStatusCancelled})
	var terr *TransitionError
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, 1, calls)
}

func TestService_UpdateStatusBackendForbidden(t *testing.T) {
	fb := &fakeBackend{
		UpdateBookingStatusFunc: func(ctx context.Context, token, id string, status backend.BookingStatus) error {
			return &backend.Error{Kind: backend.KindForbidden, StatusCode: 403}
		},
	}
	svc := NewService(fb, cache.NewMemoryService(), time.Minute)

	_, err := svc.UpdateStatus(context.Background(), &session.Session{ID: "s1"}, "b1", UpdateStatusRequest{Status: backend.BookingStatusConfirmed})
	var berr *backend.Error
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, backend.KindForbidden, berr.Kind)
}
