package bookings

import (
	"skybook/internal/backend"
	"skybook/internal/shared/middleware"
)

type AdminListResponse struct {
	Bookings []backend.Booking   `json:"bookings"`
	Count    int                 `json:"count"`
	Controls middleware.Controls `json:"controls"`
}

// UpdateStatusResponse carries the last rendered list with only the changed
// booking patched. Bookings is empty when no list was rendered this session.
type UpdateStatusResponse struct {
	ID       string                `json:"id"`
	Status   backend.BookingStatus `json:"status"`
	Bookings []backend.Booking     `json:"bookings,omitempty"`
}

type MyBookingsResponse struct {
	Bookings []backend.Booking `json:"bookings"`
	Count    int               `json:"count"`
}
