package checkout

import (
	"skybook/internal/wizard"
)

// IntentResponse is what the hosted payment element needs to render
type IntentResponse struct {
	ClientSecret   string  `json:"clientSecret"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PublishableKey string  `json:"publishableKey"`
}

// ConfirmationResponse wraps the confirmation screen data. Placeholder is set
// (with a redirect) when there is nothing to show.
type ConfirmationResponse struct {
	*wizard.ConfirmationInput
	Placeholder bool             `json:"placeholder,omitempty"`
	Redirect    *wizard.Redirect `json:"redirect,omitempty"`
}
