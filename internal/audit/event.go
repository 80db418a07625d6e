package audit

import (
	"context"
	"time"
)

// Kind names a discrepancy operators may need to reconcile by hand
type Kind string

const (
	// A passenger create call failed and a local placeholder was used
	KindPassengerPlaceholder Kind = "passenger_placeholder"
	// The booking exists in "preparing" but the processor declined the payment
	KindBookingPaymentFailed Kind = "booking_payment_failed"
	// The processor charged but the payment record was not stored
	KindPaymentRecordFailed Kind = "payment_record_failed"
)

// Event is one recorded discrepancy
type Event struct {
	Kind            Kind      `json:"kind"`
	SessionID       string    `json:"sessionId,omitempty"`
	UserID          string    `json:"userId,omitempty"`
	BookingID       string    `json:"bookingId,omitempty"`
	FlightID        string    `json:"flightId,omitempty"`
	PassengerID     string    `json:"passengerId,omitempty"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	Detail          string    `json:"detail,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Recorder accepts events. Recording never fails the caller's request.
type Recorder interface {
	Record(ctx context.Context, e Event)
}
