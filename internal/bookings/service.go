package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"skybook/internal/backend"
	"skybook/internal/session"
	"skybook/internal/shared/constants"
	"skybook/internal/shared/utils/validation"
	"skybook/pkg/cache"
	"skybook/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type Backend interface {
	ListBookings(ctx context.Context, token string) ([]backend.Booking, error)
	MyBookings(ctx context.Context, token string) ([]backend.Booking, error)
	UpdateBookingStatus(ctx context.Context, token, id string, status backend.BookingStatus) error
}

type Service interface {
	AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Booking, error)
	UpdateStatus(ctx context.Context, sess *session.Session, id string, req UpdateStatusRequest) (*UpdateStatusResponse, error)
	MyBookings(ctx context.Context, sess *session.Session) ([]backend.Booking, error)
}

type service struct {
	backend  Backend
	cache    cache.Service
	listTTL  time.Duration
	validate *validator.Validate
}

// NewService keeps the last rendered admin list per session for listTTL so a
// status change can be patched into it without a re-fetch.
func NewService(b Backend, c cache.Service, listTTL time.Duration) Service {
	return &service{
		backend:  b,
		cache:    c,
		listTTL:  listTTL,
		validate: validation.New(),
	}
}

func (s *service) AdminList(ctx context.Context, sess *session.Session, q AdminListQuery) ([]backend.Booking, error) {
	all, err := s.backend.ListBookings(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	filtered := FilterBookings(all, q)
	if err := s.cache.Set(ctx, constants.AdminBookingsKey(sess.ID), filtered, s.listTTL); err != nil {
		logger.GetDefault().WarnContext(ctx, "Failed to keep rendered booking list", "error", err, "session_id", sess.ID)
	}
	return filtered, nil
}

func (s *service) UpdateStatus(ctx context.Context, sess *session.Session, id string, req UpdateStatusRequest) (*UpdateStatusResponse, error) {
	if err := validation.Check(s.validate, req); err != nil {
		return nil, err
	}

	rendered, err := s.renderedList(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	var from backend.BookingStatus
	if b := findBooking(rendered, id); b != nil {
		from = b.Status
	}
	if !CanTransition(from, req.Status) {
		return nil, &TransitionError{From: from, To: req.Status}
	}

	if err := s.backend.UpdateBookingStatus(ctx, sess.Token, id, req.Status); err != nil {
		return nil, err
	}

	resp := &UpdateStatusResponse{ID: id, Status: req.Status}
	if rendered != nil {
		resp.Bookings = PatchBookingStatus(rendered, id, req.Status)
		if err := s.cache.Set(ctx, constants.AdminBookingsKey(sess.ID), resp.Bookings, s.listTTL); err != nil {
			logger.GetDefault().WarnContext(ctx, "Failed to keep rendered booking list", "error", err, "session_id", sess.ID)
		}
	}
	return resp, nil
}

func (s *service) renderedList(ctx context.Context, sessionID string) ([]backend.Booking, error) {
	var rendered []backend.Booking
	if err := s.cache.Get(ctx, constants.AdminBookingsKey(sessionID), &rendered); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return rendered, nil
}

func (s *service) MyBookings(ctx context.Context, sess *session.Session) ([]backend.Booking, error) {
	return s.backend.MyBookings(ctx, sess.Token)
}

// PatchBookingStatus returns a copy of list with the status of booking id
// replaced. Other entries are untouched.
func PatchBookingStatus(list []backend.Booking, id string, status backend.BookingStatus) []backend.Booking {
	out := make([]backend.Booking, len(list))
	copy(out, list)
	for i := range out {
		if bookingMatches(out[i], id) {
			out[i].Status = status
		}
	}
	return out
}

// FilterBookings applies the console's status filter and search box. The
// search matches customer name, booking reference or flight number.
func FilterBookings(all []backend.Booking, q AdminListQuery) []backend.Booking {
	text := strings.ToLower(strings.TrimSpace(q.Q))
	status := strings.ToLower(strings.TrimSpace(q.Status))

	out := make([]backend.Booking, 0, len(all))
	for _, b := range all {
		if status != "" && status != "all" && strings.ToLower(string(b.Status)) != status {
			continue
		}
		if text != "" && !matchesText(b, text) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesText(b backend.Booking, text string) bool {
	fields := []string{b.CustomerName, b.BookingID, b.ID}
	if b.Flight != nil {
		fields = append(fields, b.Flight.FlightNumber)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

func findBooking(list []backend.Booking, id string) *backend.Booking {
	for i := range list {
		if bookingMatches(list[i], id) {
			return &list[i]
		}
	}
	return nil
}

func bookingMatches(b backend.Booking, id string) bool {
	return b.ID == id || (b.ID == "" && b.BookingID == id)
}
