package backend

import (
	"context"
	"net/http"
)

func (c *Client) CreatePaymentIntent(ctx context.Context, token string, in PaymentIntentRequest) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/api/create-payment-intent", token, in, &intent, "data"); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreatePayment records a settled payment against a booking
func (c *Client) CreatePayment(ctx context.Context, token string, in PaymentInput) (*Payment, error) {
	var p Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments", token, in, &p, "payment", "data"); err != nil {
		return nil, err
	}
	return &p, nil
}
