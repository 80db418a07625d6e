package passengers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skybook/internal/audit"
	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgDOBNotPast = "Date of birth must be in the past"
	msgTooYoung   = "Passenger must be at least 1 year old"
)

// Backend is the part of the REST client passenger screens use
type Backend interface {
	CreatePassenger(ctx context.Context, token string, in backend.PassengerInput) (*backend.Passenger, error)
	ListPassengers(ctx context.Context, token string) ([]backend.Passenger, error)
	DeletePassenger(ctx context.Context, token, id string) error
}

type Service interface {
	Forms(ctx context.Context, sess *session.Session) (*FormsResponse, error)
	Submit(ctx context.Context, sess *session.Session, forms []PassengerForm) (*wizard.PaymentInput, error)

	AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Passenger, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

type service struct {
	backend  Backend
	wizard   *wizard.Store
	audit    audit.Recorder
	validate *validator.Validate
	now      func() time.Time
}

func NewService(b Backend, w *wizard.Store, recorder audit.Recorder) Service {
	return &service{
		backend:  b,
		wizard:   w,
		audit:    recorder,
		validate: validation.New(),
		now:      time.Now,
	}
}

// Forms returns one blank form per searched seat
func (s *service) Forms(ctx context.Context, sess *session.Session) (*FormsResponse, error) {
	in, err := s.wizard.PassengerCapture(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return &FormsResponse{
		Flight: *in.Flight,
		Search: *in.Search,
		Seats:  in.Seats(),
		Forms:  make([]PassengerForm, in.Seats()),
	}, nil
}

// Submit validates every form, then creates the passengers one by one. A
// create that fails is replaced by a local placeholder so the booking can go
// ahead; the substitution is logged and recorded for operators.
func (s *service) Submit(ctx context.Context, sess *session.Session, forms []PassengerForm) (*wizard.PaymentInput, error) {
	in, err := s.wizard.PassengerCapture(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	ages, err := s.validateForms(forms, in.Seats())
	if err != nil {
		return nil, err
	}

	created := make([]backend.Passenger, len(forms))
	for i, form := range forms {
		input := backend.PassengerInput{
			FirstName:   strings.TrimSpace(form.FirstName),
			LastName:    strings.TrimSpace(form.LastName),
			Email:       strings.TrimSpace(form.Email),
			Phone:       strings.TrimSpace(form.Phone),
			DateOfBirth: form.DateOfBirth,
			Gender:      form.Gender,
			Age:         ages[i],
		}

		p, err := s.backend.CreatePassenger(ctx, sess.Token, input)
		if err != nil {
			placeholder := Placeholder(input)
			logger.GetDefault().LogPassengerPlaceholder(ctx, i, placeholder.ID, err)
			s.audit.Record(ctx, audit.Event{
				Kind:        audit.KindPassengerPlaceholder,
				SessionID:   sess.ID,
				UserID:      sess.UserID(),
				FlightID:    in.Flight.ID,
				PassengerID: placeholder.ID,
				Detail:      fmt.Sprintf("passenger %d: %s", i+1, backend.UserMessage(err)),
				OccurredAt:  s.now(),
			})
			created[i] = placeholder
			continue
		}
		created[i] = *p
	}

	if err := s.wizard.SavePassengers(ctx, sess.ID, created); err != nil {
		return nil, err
	}
	return s.wizard.Payment(ctx, sess.ID)
}

// Placeholder builds a stand-in record with a temporary id and passport number
func Placeholder(in backend.PassengerInput) backend.Passenger {
	id := uuid.New()
	return backend.Passenger{
		ID:             "temp-" + id.String(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		DateOfBirth:    in.DateOfBirth,
		Gender:         in.Gender,
		Age:            in.Age,
		PassportNumber: "TEMP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]),
		Placeholder:    true,
	}
}

// validateForms requires exactly seats forms and returns the computed ages
func (s *service) validateForms(forms []PassengerForm, seats int) ([]int, error) {
	if len(forms) != seats {
		return nil, &validation.Error{Fields: map[string]string{
			"passengers": fmt.Sprintf("Exactly %d passenger(s) required, got %d", seats, len(forms)),
		}}
	}

	fields := make(map[string]string)
	ages := make([]int, len(forms))
	now := s.now()

	for i, form := range forms {
		prefix := fmt.Sprintf("passengers[%d].", i)

		var formFields map[string]string
		if err := s.validate.Struct(trimmed(form)); err != nil {
			formFields = validation.FieldErrors(err)
		}
		for field, msg := range formFields {
			fields[prefix+field] = msg
		}

		if _, bad := formFields["dateOfBirth"]; bad {
			continue
		}
		age, ok := ComputeAge(form.DateOfBirth, now)
		switch {
		case !ok:
			fields[prefix+"dateOfBirth"] = msgDOBNotPast
		case age < 1:
			fields[prefix+"dateOfBirth"] = msgTooYoung
		default:
			ages[i] = age
		}
	}

	if len(fields) > 0 {
		return nil, &validation.Error{Fields: fields}
	}
	return ages, nil
}

func trimmed(f PassengerForm) PassengerForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Gender = strings.TrimSpace(f.Gender)
	return f
}

func (s *service) AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Passenger, error) {
	all, err := s.backend.ListPassengers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return FilterPassengers(all, q.Q), nil
}

// FilterPassengers keeps passengers whose name, email or passport contains q
func FilterPassengers(all []backend.Passenger, q string) []backend.Passenger {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all
	}

	out := make([]backend.Passenger, 0, len(all))
	for _, p := range all {
		name := strings.ToLower(p.FirstName + " " + p.LastName)
		if strings.Contains(name, q) ||
			strings.Contains(strings.ToLower(p.Email), q) ||
			strings.Contains(strings.ToLower(p.PassportNumber), q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *service) Delete(ctx context.Context, sess *session.Session, id string) error {
	return s.backend.DeletePassenger(ctx, sess.Token, id)
}
