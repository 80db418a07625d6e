package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Flight inventory listing paths, in the order the search falls back through them
const (
	PathFlightsCustomer = "/api/flights/customer/all"
	PathFlightsPublic   = "/api/flights"
	PathFlightsAdmin    = "/api/flights/admin/all"
)

// ListFlights reads the inventory from one of the listing paths
func (c *Client) ListFlights(ctx context.Context, path, token string) ([]Flight, error) {
	var flights []Flight
	if err := c.do(ctx, http.MethodGet, path, token, nil, &flights, "flights", "data"); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *Client) GetFlight(ctx context.Context, id, token string) (*Flight, error) {
	var flight Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights/"+url.PathEscape(id), token, nil, &flight, "flight", "data"); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *Client) CreateFlight(ctx context.Context, token string, in FlightInput) (*Flight, error) {
	var flight Flight
	if err := c.do(ctx, http.MethodPost, "/api/flights", token, in, &flight, "flight", "data"); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *Client) UpdateFlight(ctx context.Context, token, id string, in FlightInput) (*Flight, error) {
	var flight Flight
	if err := c.do(ctx, http.MethodPut, "/api/flights/"+url.PathEscape(id), token, in, &flight, "flight", "data"); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (c *Client) DeleteFlight(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/flights/"+url.PathEscape(id), token, nil, nil)
}
