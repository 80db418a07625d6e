package contacts

import (
	"context"
	"strings"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/utils/validation"

	"github.com/go-playground/validator/v10"
)

const (
	defaultCategory = "general"
	defaultPriority = "medium"
)

type Backend interface {
	CreateContact(ctx context.Context, token string, in backend.ContactInput) (*backend.Contact, error)
	ListContacts(ctx context.Context, token string) ([]backend.Contact, error)
	UpdateContactStatus(ctx context.Context, token, id, status string) (*backend.Contact, error)
	MarkContactRead(ctx context.Context, token, id string) (*backend.Contact, error)
	RespondContact(ctx context.Context, token, id, response string) (*backend.Contact, error)
	DeleteContact(ctx context.Context, token, id string) error
}

type Service interface {
	Submit(ctx context.Context, sess *session.Session, form ContactForm) (*backend.Contact, error)

	AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Contact, error)
	UpdateStatus(ctx context.Context, sess *session.Session, id string, req UpdateStatusRequest) (*backend.Contact, error)
	MarkRead(ctx context.Context, sess *session.Session, id string) (*backend.Contact, error)
	Respond(ctx context.Context, sess *session.Session, id string, req RespondRequest) (*backend.Contact, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

type service struct {
	backend  Backend
	validate *validator.Validate
}

func NewService(b Backend) Service {
	return &service{backend: b, validate: validation.New()}
}

// Submit forwards the public form. Anonymous visitors send it without a token.
func (s *service) Submit(ctx context.Context, sess *session.Session, form ContactForm) (*backend.Contact, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if err := validation.Check(s.validate, form); err != nil {
		return nil, err
	}
	if form.Category == "" {
		form.Category = defaultCategory
	}
	if form.Priority == "" {
		form.Priority = defaultPriority
	}

	return s.backend.CreateContact(ctx, sess.Token, backend.ContactInput{
		Name:     form.Name,
		Email:    form.Email,
		Subject:  form.Subject,
		Message:  form.Message,
		Category: form.Category,
		Priority: form.Priority,
	})
}

func (s *service) AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Contact, error) {
	all, err := s.backend.ListContacts(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return FilterContacts(all, q), nil
}

func (s *service) UpdateStatus(ctx context.Context, sess *session.Session, id string, req UpdateStatusRequest) (*backend.Contact, error) {
	if err := validation.Check(s.validate, req); err != nil {
		return nil, err
	}
	return s.backend.UpdateContactStatus(ctx, sess.Token, id, req.Status)
}

func (s *service) MarkRead(ctx context.Context, sess *session.Session, id string) (*backend.Contact, error) {
	return s.backend.MarkContactRead(ctx, sess.Token, id)
}

func (s *service) Respond(ctx context.Context, sess *session.Session, id string, req RespondRequest) (*backend.Contact, error) {
	req.AdminResponse = strings.TrimSpace(req.AdminResponse)
	if err := validation.Check(s.validate, req); err != nil {
		return nil, err
	}
	return s.backend.RespondContact(ctx, sess.Token, id, req.AdminResponse)
}

func (s *service) Delete(ctx context.Context, sess *session.Session, id string) error {
	return s.backend.DeleteContact(ctx, sess.Token, id)
}

// FilterContacts applies the enum filters and the search box. "all" or an
// empty value disables a filter.
func FilterContacts(all []backend.Contact, q AdminListQuery) []backend.Contact {
	text := strings.ToLower(strings.TrimSpace(q.Q))

	out := make([]backend.Contact, 0, len(all))
	for _, ct := range all {
		if !enumMatches(q.Status, ct.Status) || !enumMatches(q.Priority, ct.Priority) || !enumMatches(q.Category, ct.Category) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(ct.Name), text) &&
			!strings.Contains(strings.ToLower(ct.Email), text) &&
			!strings.Contains(strings.ToLower(ct.Subject), text) {
			continue
		}
		out = append(out, ct)
	}
	return out
}

func enumMatches(filter, value string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	return filter == "" || filter == "all" || strings.ToLower(value) == filter
}

// CountUnread counts contacts not yet opened by an admin
func CountUnread(list []backend.Contact) int {
	n := 0
	for _, ct := range list {
		if !ct.IsRead {
			n++
		}
	}
	return n
}
