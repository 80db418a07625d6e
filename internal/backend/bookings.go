package backend

import (
	"context"
	"net/http"
	"net/url"
)

// CreateBooking registers a booking; the backend stores it as "preparing"
func (c *Client) CreateBooking(ctx context.Context, token string, in BookingInput) (*Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, in, &b, "booking", "data"); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", token, nil, &bookings, "bookings", "data"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) MyBookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/me", token, nil, &bookings, "bookings", "data"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token, id string, status BookingStatus) error {
	body := map[string]BookingStatus{"status": status}
	return c.do(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(id)+"/status", token, body, nil)
}
