package payment

import (
	"context"
	"errors"
	"fmt"

	"skybook/internal/shared/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor confirms PaymentIntents through the Stripe API
type StripeProcessor struct {
	api       *client.API
	returnURL string
}

func NewStripeProcessor(cfg config.PaymentConfig) *StripeProcessor {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeProcessor{api: api, returnURL: cfg.ReturnURL}
}

// NewStripeProcessorWithBackends is used to point the client at another API host
func NewStripeProcessorWithBackends(cfg config.PaymentConfig, backends *stripe.Backends) *StripeProcessor {
	api := &client.API{}
	api.Init(cfg.SecretKey, backends)
	return &StripeProcessor{api: api, returnURL: cfg.ReturnURL}
}

func (p *StripeProcessor) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error) {
	intentID, err := IntentIDFromClientSecret(req.ClientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(req.PaymentMethodID),
	}
	if p.returnURL != "" {
		params.ReturnURL = stripe.String(p.returnURL)
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) {
			return nil, &ProcessorError{
				Message: serr.Msg,
				Code:    string(serr.Code),
				Err:     err,
			}
		}
		return nil, fmt.Errorf("confirm payment intent %s: %w", intentID, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
	case stripe.PaymentIntentStatusRequiresAction:
		return nil, &ProcessorError{
			Message: "Your payment requires additional authentication. Please try again.",
			Status:  string(pi.Status),
		}
	default:
		return nil, &ProcessorError{
			Message: fmt.Sprintf("Payment was not completed (status: %s).", pi.Status),
			Status:  string(pi.Status),
		}
	}

	method := "card"
	if pi.PaymentMethod != nil && pi.PaymentMethod.Type != "" {
		method = string(pi.PaymentMethod.Type)
	} else if len(pi.PaymentMethodTypes) > 0 {
		method = pi.PaymentMethodTypes[0]
	}

	return &Confirmation{
		PaymentIntentID: pi.ID,
		Status:          string(pi.Status),
		Method:          method,
	}, nil
}
