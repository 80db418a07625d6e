package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/backend"
	"skybook/internal/shared/constants"
	"skybook/pkg/cache"
)

// Snapshot keys, one per piece of wizard state kept across reloads
const (
	KeySelectedFlight = "selectedFlight"
	KeySearchData     = "searchData"
	KeySearchResults  = "searchResults"
	KeyPassengers     = "passengers"
	KeyPaymentIntent  = "paymentIntent"
	KeyBookingData    = "bookingData"
)

// IntentSnapshot is the payment intent issued for the current wizard run
type IntentSnapshot struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// Store keeps wizard snapshots per session. Writes are last-write-wins.
type Store struct {
	cache cache.Service
	ttl   time.Duration
}

func NewStore(c cache.Service, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func key(sessionID, name string) string {
	return constants.WizardKey(sessionID, name)
}

func (s *Store) put(ctx context.Context, sessionID, name string, v interface{}) error {
	if err := s.cache.Set(ctx, key(sessionID, name), v, s.ttl); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

// get returns ErrIncompleteState when the snapshot is absent
func (s *Store) get(ctx context.Context, sessionID, name string, dest interface{}) error {
	if err := s.cache.Get(ctx, key(sessionID, name), dest); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return fmt.Errorf("%w: %s", ErrIncompleteState, name)
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// SaveSearch records a search and its (filtered, sorted) results. Any later
// wizard state belongs to an older search and is dropped.
func (s *Store) SaveSearch(ctx context.Context, sessionID string, result SearchResult) error {
	if err := s.cache.Delete(ctx,
		key(sessionID, KeySelectedFlight),
		key(sessionID, KeyPassengers),
		key(sessionID, KeyPaymentIntent),
	); err != nil {
		return fmt.Errorf("reset wizard: %w", err)
	}
	if err := s.put(ctx, sessionID, KeySearchData, result.Criteria); err != nil {
		return err
	}
	return s.put(ctx, sessionID, KeySearchResults, result.Flights)
}

func (s *Store) SearchResult(ctx context.Context, sessionID string) (*SearchResult, error) {
	var result SearchResult
	if err := s.get(ctx, sessionID, KeySearchData, &result.Criteria); err != nil {
		return nil, err
	}
	if err := s.get(ctx, sessionID, KeySearchResults, &result.Flights); err != nil {
		return nil, err
	}
	return &result, result.Validate()
}

// SelectFlight stores the chosen flight exactly as it was listed
func (s *Store) SelectFlight(ctx context.Context, sessionID string, flight backend.Flight) error {
	if err := s.cache.Delete(ctx, key(sessionID, KeyPassengers), key(sessionID, KeyPaymentIntent)); err != nil {
		return fmt.Errorf("reset wizard: %w", err)
	}
	return s.put(ctx, sessionID, KeySelectedFlight, flight)
}

// PassengerCapture assembles and validates the passenger step input
func (s *Store) PassengerCapture(ctx context.Context, sessionID string) (*PassengerCaptureInput, error) {
	var (
		flight backend.Flight
		search SearchCriteria
	)
	if err := s.get(ctx, sessionID, KeySelectedFlight, &flight); err != nil {
		return nil, err
	}
	if err := s.get(ctx, sessionID, KeySearchData, &search); err != nil {
		return nil, err
	}

	in := &PassengerCaptureInput{Flight: &flight, Search: &search}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Store) SavePassengers(ctx context.Context, sessionID string, passengers []backend.Passenger) error {
	return s.put(ctx, sessionID, KeyPassengers, passengers)
}

// Payment assembles and validates the payment step input
func (s *Store) Payment(ctx context.Context, sessionID string) (*PaymentInput, error) {
	capture, err := s.PassengerCapture(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var passengers []backend.Passenger
	if err := s.get(ctx, sessionID, KeyPassengers, &passengers); err != nil {
		return nil, err
	}

	in := &PaymentInput{Flight: capture.Flight, Search: capture.Search, Passengers: passengers}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Store) SaveIntent(ctx context.Context, sessionID string, intent IntentSnapshot) error {
	return s.put(ctx, sessionID, KeyPaymentIntent, intent)
}

func (s *Store) Intent(ctx context.Context, sessionID string) (*IntentSnapshot, error) {
	var intent IntentSnapshot
	if err := s.get(ctx, sessionID, KeyPaymentIntent, &intent); err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: payment intent", ErrIncompleteState)
	}
	return &intent, nil
}

// ClearIntent drops the payment intent once it has been charged, so the pay
// step cannot run again against the same intent
func (s *Store) ClearIntent(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, key(sessionID, KeyPaymentIntent)); err != nil {
		return fmt.Errorf("clear %s: %w", KeyPaymentIntent, err)
	}
	return nil
}

func (s *Store) SaveConfirmation(ctx context.Context, sessionID string, in ConfirmationInput) error {
	return s.put(ctx, sessionID, KeyBookingData, in)
}

func (s *Store) Confirmation(ctx context.Context, sessionID string) (*ConfirmationInput, error) {
	var in ConfirmationInput
	if err := s.get(ctx, sessionID, KeyBookingData, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

// Clear drops every snapshot of the session
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.DeletePattern(ctx, key(sessionID, "*")); err != nil {
		return fmt.Errorf("clear wizard: %w", err)
	}
	return nil
}
