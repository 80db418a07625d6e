package passengers

import (
	"context"
	"regexp"
	"testing"
	"time"

	"skybook/internal/audit"
	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	CreatePassengerFunc func(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error)
	ListPassengersFunc  func(ctx context.Context, token string) ([]backend.Passenger, error)
	DeletePassengerFunc func(ctx context.Context, token, id string) error
}

func (f *fakeBackend) CreatePassenger(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error) {
	return f.CreatePassengerFunc(ctx, token, in)
}

func (f *fakeBackend) ListPassengers(ctx context.Context, token string) ([]backend.Passenger, error) {
	return f.ListPassengersFunc(ctx, token)
}

func (f *fakeBackend) DeletePassenger(ctx context.Context, token, id string) error {
	return f.DeletePassengerFunc(ctx, token, id)
}

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Record(ctx context.Context, e audit.Event) {
	r.events = append(r.events, e)
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, fb *fakeBackend, seats int) (*service, *recordingAudit, *session.Session) {
	t.Helper()
	ctx := context.Background()
	w := wizard.NewStore(cache.NewMemoryService(), time.Hour)
	rec := &recordingAudit{}
	sess := &session.Session{ID: "s1", Token: "tok"}

	flight := backend.Flight{ID: "f1", Price: 100}
	require.NoError(t, w.SaveSearch(ctx, sess.ID, wizard.SearchResult{
		Criteria: wizard.SearchCriteria{Seats: seats, FareClass: "economy"},
		Flights:  []backend.Flight{flight},
	}))
	require.NoError(t, w.SelectFlight(ctx, sess.ID, flight))

	svc := NewService(fb, w, rec).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, rec, sess
}

func validForm(first string) PassengerForm {
	return PassengerForm{
		FirstName:   first,
		LastName:    "Traveller",
		Email:       first + "@example.com",
		Phone:       "+1 555 0100",
		DateOfBirth: "1990-05-20",
		Gender:      "female",
	}
}

func TestComputeAge(t *testing.T) {
	tests := []struct {
		dob    string
		want   int
		wantOK bool
	}{
		{"1990-05-20", 36, true},
		{"1990-10-19", 35, true},
		{"1990-10-18", 36, true},
		{"2025-10-18", 1, true},
		{"2025-10-19", 0, true},
		{"2026-10-18", 0, true},
		{"2027-01-01", 0, false},
		{"18/10/1990", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			age, ok := ComputeAge(tt.dob, fixedNow)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}

func TestService_Forms(t *testing.T) {
	svc, _, sess := setup(t, &fakeBackend{}, 3)

	forms, err := svc.Forms(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 3, forms.Seats)
	assert.Len(t, forms.Forms, 3)

	_, err = svc.Forms(context.Background(), &session.Session{ID: "nobody"})
	assert.ErrorIs(t, err, wizard.ErrIncompleteState)
}

func TestService_SubmitValidation(t *testing.T) {
	called := false
	fb := &fakeBackend{CreatePassengerFunc: func(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error) {
		called = true
		return &backend.Passenger{ID: "p"}, nil
	}}

	tests := []struct {
		name       string
		forms      []PassengerForm
		wantFields []string
		wantDOBMsg string
	}{
		{
			name:       "wrong number of forms",
			forms:      []PassengerForm{validForm("ann")},
			wantFields: []string{"passengers"},
		},
		{
			name: "per passenger field errors",
			forms: func() []PassengerForm {
				a := validForm("ann")
				a.Email = "not-an-email"
				b := validForm("bob")
				b.FirstName = "  "
				return []PassengerForm{a, b}
			}(),
			wantFields: []string{"passengers[0].email", "passengers[1].firstName"},
		},
		{
			name: "born today is rejected",
			forms: func() []PassengerForm {
				b := validForm("bob")
				b.DateOfBirth = "2026-10-18"
				return []PassengerForm{validForm("ann"), b}
			}(),
			wantFields: []string{"passengers[1].dateOfBirth"},
			wantDOBMsg: msgTooYoung,
		},
		{
			name: "born in the future is rejected",
			forms: func() []PassengerForm {
				b := validForm("bob")
				b.DateOfBirth = "2026-10-19"
				return []PassengerForm{validForm("ann"), b}
			}(),
			wantFields: []string{"passengers[1].dateOfBirth"},
			wantDOBMsg: msgDOBNotPast,
		},
		{
			name: "under one year is rejected",
			forms: func() []PassengerForm {
				b := validForm("bob")
				b.DateOfBirth = "2026-01-01"
				return []PassengerForm{validForm("ann"), b}
			}(),
			wantFields: []string{"passengers[1].dateOfBirth"},
			wantDOBMsg: msgTooYoung,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sess := setup(t, fb, 2)

			_, err := svc.Submit(context.Background(), sess, tt.forms)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.wantFields))
			if tt.wantDOBMsg != "" {
				assert.Equal(t, tt.wantDOBMsg, verr.Fields["passengers[1].dateOfBirth"])
			}
			assert.False(t, called)
		})
	}
}

func TestService_SubmitCreatesPassengers(t *testing.T) {
	var inputs []backend.PassengerInput
	fb := &fakeBackend{CreatePassengerFunc: func(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error) {
		assert.Equal(t, "tok", token)
		inputs = append(inputs, in)
		return &backend.Passenger{ID: "p-" + in.FirstName, FirstName: in.FirstName, PassportNumber: "X123"}, nil
	}}
	svc, rec, sess := setup(t, fb, 2)

	in, err := svc.Submit(context.Background(), sess, []PassengerForm{validForm("ann"), validForm("bob")})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-ann", "p-bob"}, in.PassengerIDs())
	assert.Equal(t, 200.0, in.Total())
	assert.Equal(t, 36, inputs[0].Age)
	assert.Empty(t, rec.events)
}

func TestService_SubmitPlaceholderOnFailure(t *testing.T) {
	fb := &fakeBackend{CreatePassengerFunc: func(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error) {
		if in.FirstName == "bob" {
			return nil, &backend.Error{Kind: backend.KindServer, StatusCode: 500, Message: "db down"}
		}
		return &backend.Passenger{ID: "p-ann", FirstName: "ann"}, nil
	}}
	svc, rec, sess := setup(t, fb, 2)

	in, err := svc.Submit(context.Background(), sess, []PassengerForm{validForm("ann"), validForm("bob")})
	require.NoError(t, err)
	require.Len(t, in.Passengers, 2)

	bob := in.Passengers[1]
	assert.True(t, bob.Placeholder)
	assert.Regexp(t, regexp.MustCompile(`^temp-[0-9a-f-]{36}$`), bob.ID)
	assert.Regexp(t, regexp.MustCompile(`^TEMP-[0-9A-F]{8}$`), bob.PassportNumber)
	assert.Equal(t, "bob", bob.FirstName)

	require.Len(t, rec.events, 1)
	assert.Equal(t, audit.KindPassengerPlaceholder, rec.events[0].Kind)
	assert.Equal(t, bob.ID, rec.events[0].PassengerID)
	assert.Equal(t, "f1", rec.events[0].FlightID)
}

func TestFilterPassengers(t *testing.T) {
	all := []backend.Passenger{
		{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PassportNumber: "P100"},
		{ID: "2", FirstName: "Bob", LastName: "Ray", Email: "bob@example.com", PassportNumber: "TEMP-ABCD1234"},
	}

	assert.Len(t, FilterPassengers(all, ""), 2)
	assert.Equal(t, "1", FilterPassengers(all, "ann lee")[0].ID)
	assert.Equal(t, "2", FilterPassengers(all, "temp-")[0].ID)
	assert.Empty(t, FilterPassengers(all, "zed"))
}
