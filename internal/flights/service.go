package flights

import (
	"context"
	"errors"
	"strings"
	"time"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/constants"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/go-playground/validator/v10"
)

var ErrFlightNotFound = errors.New("flight not found")

const msgSeatsExceedTotal = "Available seats cannot exceed total seats"

// Backend is the part of the REST client the flight screens use
type Backend interface {
	ListFlights(ctx context.Context, path, token string) ([]backend.Flight, error)
	GetFlight(ctx context.Context, id, token string) (*backend.Flight, error)
	CreateFlight(ctx context.Context, token string, in backend.FlightInput) (*backend.Flight, error)
	UpdateFlight(ctx context.Context, token, id string, in backend.FlightInput) (*backend.Flight, error)
	DeleteFlight(ctx context.Context, token, id string) error
}

type Service interface {
	Search(ctx context.Context, sess *session.Session, q SearchQuery) (*SearchResponse, error)
	GetFlight(ctx context.Context, sess *session.Session, id string) (*backend.Flight, error)
	Select(ctx context.Context, sess *session.Session, flightID string) (*wizard.PassengerCaptureInput, error)

	AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Flight, error)
	EditForm(ctx context.Context, sess *session.Session, id string) (*FlightForm, error)
	Create(ctx context.Context, sess *session.Session, form FlightForm) (*backend.Flight, error)
	Update(ctx context.Context, sess *session.Session, id string, form FlightForm) (*backend.Flight, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

type service struct {
	backend  Backend
	cache    cache.Service
	wizard   *wizard.Store
	policy   *FallbackPolicy
	validate *validator.Validate
	listTTL  time.Duration
}

func NewService(b Backend, c cache.Service, w *wizard.Store, policy *FallbackPolicy, listTTL time.Duration) Service {
	return &service{
		backend:  b,
		cache:    c,
		wizard:   w,
		policy:   policy,
		validate: validation.New(),
		listTTL:  listTTL,
	}
}

func (s *service) Search(ctx context.Context, sess *session.Session, q SearchQuery) (*SearchResponse, error) {
	criteria := wizard.SearchCriteria{
		From:          q.From,
		To:            q.To,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Seats:         q.Seats,
		FareClass:     strings.ToLower(q.FareClass),
	}
	criteria.Normalize()

	if err := validation.Check(s.validate, criteria); err != nil {
		return nil, err
	}
	if err := validation.Check(s.validate, q); err != nil {
		return nil, err
	}

	all, strategy, err := s.policy.Run(ctx, sess.IsAuthenticated(), func(ctx context.Context, st Strategy) ([]backend.Flight, error) {
		return s.list(ctx, st, sess.Token)
	})
	if err != nil {
		return nil, err
	}

	matched := FilterFlights(all, criteria)
	SortFlights(matched, q.Sort)

	if err := s.wizard.SaveSearch(ctx, sess.ID, wizard.SearchResult{Criteria: criteria, Flights: matched}); err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Criteria: criteria,
		Flights:  toViews(matched),
		Count:    len(matched),
		Sort:     q.Sort,
		Source:   strategy.Name,
	}
	if len(matched) == 0 {
		resp.Empty = true
		resp.Message = MessageNoFlights
	}
	return resp, nil
}

// list reads one strategy's inventory. Token-scoped listings are not cached.
func (s *service) list(ctx context.Context, st Strategy, token string) ([]backend.Flight, error) {
	if st.RequiresAuth {
		return s.backend.ListFlights(ctx, st.Path, token)
	}

	var flights []backend.Flight
	err := s.cache.GetOrSet(ctx, constants.FlightListKey(st.Name), s.listTTL, func() (interface{}, error) {
		return s.backend.ListFlights(ctx, st.Path, token)
	}, &flights)
	if err != nil {
		return nil, err
	}
	return flights, nil
}

// GetFlight caches anonymous reads only. A token may see fields or flights the
// public endpoint hides, so those reads always go to the backend.
func (s *service) GetFlight(ctx context.Context, sess *session.Session, id string) (*backend.Flight, error) {
	if sess.Token != "" {
		return s.backend.GetFlight(ctx, id, sess.Token)
	}

	var flight backend.Flight
	err := s.cache.GetOrSet(ctx, constants.FlightDetailKey(id), constants.TTL_FLIGHT_DETAIL, func() (interface{}, error) {
		return s.backend.GetFlight(ctx, id, sess.Token)
	}, &flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// Select stores the chosen flight for the passenger step. The flight comes
// from the stored results when present so it round-trips unchanged.
func (s *service) Select(ctx context.Context, sess *session.Session, flightID string) (*wizard.PassengerCaptureInput, error) {
	result, err := s.wizard.SearchResult(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	var selected *backend.Flight
	for i := range result.Flights {
		if result.Flights[i].ID == flightID {
			selected = &result.Flights[i]
			break
		}
	}
	if selected == nil {
		logger.GetDefault().InfoContext(ctx, "Selected flight not in stored results, reading from backend", "flight_id", flightID)
		selected, err = s.GetFlight(ctx, sess, flightID)
		if err != nil {
			return nil, err
		}
		if selected.ID == "" {
			return nil, ErrFlightNotFound
		}
	}

	if err := s.wizard.SelectFlight(ctx, sess.ID, *selected); err != nil {
		return nil, err
	}
	return s.wizard.PassengerCapture(ctx, sess.ID)
}

func (s *service) AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Flight, error) {
	all, err := s.backend.ListFlights(ctx, backend.PathFlightsAdmin, sess.Token)
	if err != nil {
		return nil, err
	}
	return FilterAdmin(all, q), nil
}

// FilterAdmin applies the admin console's search box and status filter
func FilterAdmin(flights []backend.Flight, q AdminListQuery) []backend.Flight {
	text := strings.ToLower(strings.TrimSpace(q.Q))
	status := strings.ToLower(strings.TrimSpace(q.Status))

	out := make([]backend.Flight, 0, len(flights))
	for _, f := range flights {
		if status != "" && status != "all" && strings.ToLower(string(f.Status)) != status {
			continue
		}
		if text != "" && !containsAny(text,
			f.Airline, f.FlightNumber,
			f.Departure.Airport, f.Departure.City,
			f.Arrival.Airport, f.Arrival.City,
		) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func containsAny(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// EditForm returns a detached copy of the flight for editing
func (s *service) EditForm(ctx context.Context, sess *session.Session, id string) (*FlightForm, error) {
	flight, err := s.backend.GetFlight(ctx, id, sess.Token)
	if err != nil {
		return nil, err
	}
	form := formFromFlight(*flight)
	return &form, nil
}

func (s *service) Create(ctx context.Context, sess *session.Session, form FlightForm) (*backend.Flight, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	flight, err := s.backend.CreateFlight(ctx, sess.Token, form.input())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *service) Update(ctx context.Context, sess *session.Session, id string, form FlightForm) (*backend.Flight, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	flight, err := s.backend.UpdateFlight(ctx, sess.Token, id, form.input())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *service) Delete(ctx context.Context, sess *session.Session, id string) error {
	if err := s.backend.DeleteFlight(ctx, sess.Token, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) validateForm(form FlightForm) error {
	err := validation.Check(s.validate, form)
	var verr *validation.Error
	if errors.As(err, &verr) {
		if form.AvailableSeats > form.TotalSeats {
			verr.Fields["availableSeats"] = msgSeatsExceedTotal
		}
	}
	return err
}

// invalidate drops cached inventory after an admin change
func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.CACHE_PATTERN_FLIGHTS); err != nil {
		logger.GetDefault().WarnContext(ctx, "Failed to invalidate flight cache", "error", err)
	}
}
