package checkout

import (
	"context"
	"strings"
	"time"

	"skybook/internal/audit"
	"skybook/internal/backend"
	"skybook/internal/payment"
	"skybook/internal/session"
	"skybook/internal/shared/config"
	"skybook/internal/shared/utils/validation"
	"skybook/internal/wizard"
	"skybook/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Backend is the part of the REST client the payment step uses
type Backend interface {
	CreatePaymentIntent(ctx context.Context, token string, in backend.PaymentIntentRequest) (*backend.PaymentIntent, error)
	CreateBooking(ctx context.Context, token string, in backend.BookingInput) (*backend.Booking, error)
	CreatePayment(ctx context.Context, token string, in backend.PaymentInput) (*backend.Payment, error)
}

type Service interface {
	CreateIntent(ctx context.Context, sess *session.Session) (*IntentResponse, error)
	Pay(ctx context.Context, sess *session.Session, req PayRequest) (*wizard.ConfirmationInput, error)
	Confirmation(ctx context.Context, sess *session.Session) (*wizard.ConfirmationInput, error)
}

type service struct {
	backend   Backend
	processor payment.Processor
	wizard    *wizard.Store
	audit     audit.Recorder
	payment   config.PaymentConfig
	validate  *validator.Validate
	now       func() time.Time
}

func NewService(b Backend, p payment.Processor, w *wizard.Store, recorder audit.Recorder, cfg config.PaymentConfig) Service {
	return &service{
		backend:   b,
		processor: p,
		wizard:    w,
		audit:     recorder,
		payment:   cfg,
		validate:  validation.New(),
		now:       time.Now,
	}
}

// CreateIntent asks the backend for a payment intent covering price × seats
func (s *service) CreateIntent(ctx context.Context, sess *session.Session) (*IntentResponse, error) {
	in, err := s.wizard.Payment(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	amount := in.Total()
	intent, err := s.backend.CreatePaymentIntent(ctx, sess.Token, backend.PaymentIntentRequest{
		Amount:   amount,
		Currency: s.payment.Currency,
		FlightID: in.Flight.ID,
		Seats:    in.Search.Seats,
	})
	if err != nil {
		return nil, err
	}

	intentID := intent.PaymentIntentID
	if intentID == "" {
		if intentID, err = payment.IntentIDFromClientSecret(intent.ClientSecret); err != nil {
			return nil, err
		}
	}

	if err := s.wizard.SaveIntent(ctx, sess.ID, wizard.IntentSnapshot{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intentID,
		Amount:          amount,
		Currency:        s.payment.Currency,
	}); err != nil {
		return nil, err
	}

	return &IntentResponse{
		ClientSecret:   intent.ClientSecret,
		Amount:         amount,
		Currency:       s.payment.Currency,
		PublishableKey: s.payment.PublishableKey,
	}, nil
}

// Pay runs the booking sequence: booking record, processor confirmation,
// payment record. Each step starts only after the previous one returned.
// A booking left behind by a failed confirmation stays "preparing"; it is
// reported, not cancelled.
func (s *service) Pay(ctx context.Context, sess *session.Session, req PayRequest) (*wizard.ConfirmationInput, error) {
	if err := validation.Check(s.validate, req); err != nil {
		return nil, err
	}

	in, err := s.wizard.Payment(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	intent, err := s.wizard.Intent(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	total := in.Total()
	name, phone := customerContact(req, sess, in.Passengers)

	booking, err := s.backend.CreateBooking(ctx, sess.Token, backend.BookingInput{
		FlightID:      in.Flight.ID,
		SeatsBooked:   in.Search.Seats,
		Passengers:    in.PassengerIDs(),
		CustomerName:  name,
		CustomerPhone: phone,
		TotalAmount:   total,
	})
	if err != nil {
		return nil, err
	}
	if booking.Status == "" {
		booking.Status = backend.BookingStatusPreparing
	}
	logger.GetDefault().LogBookingCreated(ctx, bookingRef(booking), in.Flight.ID, sess.UserID())

	confirmation, err := s.processor.Confirm(ctx, payment.ConfirmRequest{
		ClientSecret:    intent.ClientSecret,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		logger.GetDefault().LogPaymentFailed(ctx, bookingRef(booking), intent.PaymentIntentID, err.Error())
		s.audit.Record(ctx, audit.Event{
			Kind:            audit.KindBookingPaymentFailed,
			SessionID:       sess.ID,
			UserID:          sess.UserID(),
			BookingID:       bookingRef(booking),
			FlightID:        in.Flight.ID,
			PaymentIntentID: intent.PaymentIntentID,
			Detail:          err.Error(),
			OccurredAt:      s.now(),
		})
		return nil, err
	}

	// A resubmit now finds no intent and stops before creating a second booking
	if err := s.wizard.ClearIntent(ctx, sess.ID); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "Failed to drop charged payment intent", err, map[string]interface{}{
			"payment_intent_id": confirmation.PaymentIntentID,
		})
	}

	result := wizard.ConfirmationInput{
		Booking:         booking,
		Flight:          in.Flight,
		Passengers:      in.Passengers,
		PaymentIntentID: confirmation.PaymentIntentID,
		TotalAmount:     total,
	}

	record, err := s.backend.CreatePayment(ctx, sess.Token, backend.PaymentInput{
		BookingID:       bookingRef(booking),
		PaymentIntentID: confirmation.PaymentIntentID,
		Amount:          total,
		Method:          confirmation.Method,
	})
	if err != nil {
		// The charge went through; the confirmation is still shown
		logger.GetDefault().ErrorWithContext(ctx, "Payment record not stored", err, map[string]interface{}{
			"booking_id":        bookingRef(booking),
			"payment_intent_id": confirmation.PaymentIntentID,
		})
		s.audit.Record(ctx, audit.Event{
			Kind:            audit.KindPaymentRecordFailed,
			SessionID:       sess.ID,
			UserID:          sess.UserID(),
			BookingID:       bookingRef(booking),
			FlightID:        in.Flight.ID,
			PaymentIntentID: confirmation.PaymentIntentID,
			Detail:          err.Error(),
			OccurredAt:      s.now(),
		})
		result.PaymentRecordPending = true
	} else {
		result.Payment = record
	}

	if err := s.wizard.SaveConfirmation(ctx, sess.ID, result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) Confirmation(ctx context.Context, sess *session.Session) (*wizard.ConfirmationInput, error) {
	return s.wizard.Confirmation(ctx, sess.ID)
}

// customerContact picks the booking contact: the submitted values, then the
// logged-in user, then the first passenger.
func customerContact(req PayRequest, sess *session.Session, passengers []backend.Passenger) (string, string) {
	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.CustomerPhone)

	if sess.User != nil {
		if name == "" {
			name = sess.User.Name
		}
		if phone == "" {
			phone = sess.User.Phone
		}
	}
	if len(passengers) > 0 {
		if name == "" {
			name = strings.TrimSpace(passengers[0].FirstName + " " + passengers[0].LastName)
		}
		if phone == "" {
			phone = passengers[0].Phone
		}
	}
	return name, phone
}

func bookingRef(b *backend.Booking) string {
	if b.ID != "" {
		return b.ID
	}
	return b.BookingID
}

