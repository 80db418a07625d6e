package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrMalformedClientSecret = errors.New("malformed payment client secret")

// Processor confirms a payment intent with the external payment processor
type Processor interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error)
}

type ConfirmRequest struct {
	ClientSecret    string
	PaymentMethodID string
}

// Confirmation is a processor-accepted payment
type Confirmation struct {
	PaymentIntentID string
	Status          string
	Method          string
}

// ProcessorError is a processor rejection. Message is shown to the user
// exactly as the processor worded it.
type ProcessorError struct {
	Message string
	Code    string
	Status  string
	Err     error
}

func (e *ProcessorError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment processor: %s (%s)", e.Message, e.Code)
	}
	return "payment processor: " + e.Message
}

func (e *ProcessorError) Unwrap() error { return e.Err }

func (e *ProcessorError) UserMessage() string { return e.Message }

func (e *ProcessorError) HTTPStatus() int { return http.StatusPaymentRequired }

// IntentIDFromClientSecret returns the intent id embedded in a client secret
// ("pi_123_secret_abc" -> "pi_123")
func IntentIDFromClientSecret(secret string) (string, error) {
	i := strings.Index(secret, "_secret_")
	if i <= 0 {
		return "", ErrMalformedClientSecret
	}
	return secret[:i], nil
}
