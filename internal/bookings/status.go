package bookings

import (
	"fmt"
	"net/http"

	"skybook/internal/backend"
)

// CanTransition is the console rule: a preparing booking is either
// confirmed or declined, and nothing moves after that.
func CanTransition(from, to backend.BookingStatus) bool {
	if from != "" && from != backend.BookingStatusPreparing {
		return false
	}
	return to == backend.BookingStatusConfirmed || to == backend.BookingStatusDeclined
}

// TransitionError rejects a status change the console does not offer
type TransitionError struct {
	From backend.BookingStatus
	To   backend.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking status cannot change from %q to %q", e.From, e.To)
}

func (e *TransitionError) UserMessage() string {
	if e.From != "" && e.From != backend.BookingStatusPreparing {
		return fmt.Sprintf("Booking is already %s", e.From)
	}
	return "Booking status can only be set to confirmed or declined"
}

func (e *TransitionError) HTTPStatus() int { return http.StatusConflict }
