package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) CreatePassenger(ctx context.Context, token string, in PassengerInput) (*Passenger, error) {
	var p Passenger
	if err := c.do(ctx, http.MethodPost, "/api/passengers", token, in, &p, "passenger", "data"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListPassengers(ctx context.Context, token string) ([]Passenger, error) {
	var passengers []Passenger
	if err := c.do(ctx, http.MethodGet, "/api/passengers/all", token, nil, &passengers, "passengers", "data"); err != nil {
		return nil, err
	}
	return passengers, nil
}

func (c *Client) DeletePassenger(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/passengers/"+url.PathEscape(id), token, nil, nil)
}
