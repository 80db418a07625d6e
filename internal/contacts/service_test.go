package contacts

import (
	"context"
	"errors"
	"testing"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/utils/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	created  []backend.ContactInput
	contacts []backend.Contact
	statuses map[string]string
}

func (f *fakeBackend) CreateContact(ctx context.Context, token string, in backend.ContactInput) (*backend.Contact, error) {
	f.created = append(f.created, in)
	return &backend.Contact{ID: "c-new", Name: in.Name, Category: in.Category, Priority: in.Priority, Status: "new"}, nil
}

func (f *fakeBackend) ListContacts(ctx context.Context, token string) ([]backend.Contact, error) {
	return f.contacts, nil
}

func (f *fakeBackend) UpdateContactStatus(ctx context.Context, token, id, status string) (*backend.Contact, error) {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[id] = status
	return &backend.Contact{ID: id, Status: status}, nil
}

func (f *fakeBackend) MarkContactRead(ctx context.Context, token, id string) (*backend.Contact, error) {
	return &backend.Contact{ID: id, IsRead: true}, nil
}

func (f *fakeBackend) RespondContact(ctx context.Context, token, id, response string) (*backend.Contact, error) {
	return &backend.Contact{ID: id, AdminResponse: response}, nil
}

func (f *fakeBackend) DeleteContact(ctx context.Context, token, id string) error {
	return nil
}

func validForm() ContactForm {
	return ContactForm{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Seat change",
		Message: "Can I move to an aisle seat on my flight?",
	}
}

func TestService_SubmitDefaults(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewService(fb)

	contact, err := svc.Submit(context.Background(), &session.Session{ID: "s1"}, validForm())
	require.NoError(t, err)

	require.Len(t, fb.created, 1)
	assert.Equal(t, "general", fb.created[0].Category)
	assert.Equal(t, "medium", fb.created[0].Priority)
	assert.Equal(t, "c-new", contact.ID)
}

func TestService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(f *ContactForm)
		field string
	}{
		{"missing name", func(f *ContactForm) { f.Name = "  " }, "name"},
		{"bad email", func(f *ContactForm) { f.Email = "not-an-email" }, "email"},
		{"short message", func(f *ContactForm) { f.Message = "hi" }, "message"},
		{"unknown category", func(f *ContactForm) { f.Category = "lost-luggage" }, "category"},
		{"unknown priority", func(f *ContactForm) { f.Priority = "critical" }, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{}
			form := validForm()
			tt.edit(&form)

			_, err := NewService(fb).Submit(context.Background(), &session.Session{}, form)

			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, fb.created)
		})
	}
}

func TestService_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	fb := &fakeBackend{}
	svc := NewService(fb)

	_, err := svc.UpdateStatus(context.Background(), &session.Session{}, "c1", UpdateStatusRequest{Status: "archived"})
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, fb.statuses)

	got, err := svc.UpdateStatus(context.Background(), &session.Session{}, "c1", UpdateStatusRequest{Status: "in-progress"})
	require.NoError(t, err)
	assert.Equal(t, "in-progress", got.Status)
}

func TestFilterContacts(t *testing.T) {
	all := []backend.Contact{
		{ID: "1", Name: "Ada", Email: "ada@example.com", Subject: "Refund", Status: "new", Priority: "high", Category: "payment"},
		{ID: "2", Name: "Grace", Email: "grace@example.com", Subject: "Baggage", Status: "resolved", Priority: "low", Category: "general", IsRead: true},
		{ID: "3", Name: "Alan", Email: "alan@example.com", Subject: "Refund status", Status: "new", Priority: "urgent", Category: "payment"},
	}

	assert.Len(t, FilterContacts(all, AdminListQuery{}), 3)
	assert.Len(t, FilterContacts(all, AdminListQuery{Status: "new"}), 2)
	assert.Len(t, FilterContacts(all, AdminListQuery{Category: "payment", Priority: "urgent"}), 1)
	assert.Len(t, FilterContacts(all, AdminListQuery{Q: "refund", Status: "all"}), 2)
	assert.Empty(t, FilterContacts(all, AdminListQuery{Q: "refund", Category: "general"}))

	assert.Equal(t, 2, CountUnread(all))
}
