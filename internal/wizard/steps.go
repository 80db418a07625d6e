package wizard

import (
	"errors"
	"fmt"
	"time"

	"skybook/internal/backend"
)

// ErrIncompleteState is returned when a step is entered without the data the
// previous step should have produced. Callers answer with a home redirect.
var ErrIncompleteState = errors.New("booking details are missing or incomplete")

// Step names one screen of the booking wizard
type Step string

const (
	StepResults      Step = "results"
	StepPassengers   Step = "passengers"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// StepInput is what a step needs to render. Each variant checks its own
// completeness before the step uses it.
type StepInput interface {
	Step() Step
	Validate() error
}

// SearchCriteria is one search submission. Dates are kept as typed; one
// that does not parse matches every flight instead of failing the search.
type SearchCriteria struct {
	From          string `json:"from" form:"from"`
	To            string `json:"to" form:"to"`
	DepartureDate string `json:"departureDate" form:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty" form:"returnDate"`
	Seats         int    `json:"seats" form:"seats" validate:"min=1,max=9"`
	FareClass     string `json:"fareClass" form:"fareClass" validate:"oneof=economy business first"`
}

// Normalize fills defaults for fields the search form may leave blank
func (c *SearchCriteria) Normalize() {
	if c.Seats == 0 {
		c.Seats = 1
	}
	if c.FareClass == "" {
		c.FareClass = "economy"
	}
}

// SearchResult feeds the results screen
type SearchResult struct {
	Criteria SearchCriteria   `json:"criteria"`
	Flights  []backend.Flight `json:"flights"`
}

func (SearchResult) Step() Step { return StepResults }

func (r SearchResult) Validate() error {
	if r.Criteria.Seats < 1 {
		return fmt.Errorf("%w: seat count", ErrIncompleteState)
	}
	return nil
}

// PassengerCaptureInput feeds the passenger forms
type PassengerCaptureInput struct {
	Flight *backend.Flight `json:"flight"`
	Search *SearchCriteria `json:"searchData"`
}

func (PassengerCaptureInput) Step() Step { return StepPassengers }

func (in PassengerCaptureInput) Validate() error {
	if in.Flight == nil || in.Flight.ID == "" {
		return fmt.Errorf("%w: selected flight", ErrIncompleteState)
	}
	if in.Search == nil || in.Search.Seats < 1 {
		return fmt.Errorf("%w: search details", ErrIncompleteState)
	}
	return nil
}

// Seats is the number of passenger forms to render
func (in PassengerCaptureInput) Seats() int {
	if in.Search == nil {
		return 0
	}
	return in.Search.Seats
}

// PaymentInput feeds the payment screen
type PaymentInput struct {
	Flight     *backend.Flight     `json:"flight"`
	Search     *SearchCriteria     `json:"searchData"`
	Passengers []backend.Passenger `json:"passengers"`
}

func (PaymentInput) Step() Step { return StepPayment }

// Validate requires exactly one passenger record per searched seat
func (in PaymentInput) Validate() error {
	capture := PassengerCaptureInput{Flight: in.Flight, Search: in.Search}
	if err := capture.Validate(); err != nil {
		return err
	}
	if len(in.Passengers) != in.Search.Seats {
		return fmt.Errorf("%w: expected %d passengers, have %d", ErrIncompleteState, in.Search.Seats, len(in.Passengers))
	}
	return nil
}

// Total is price × seats
func (in PaymentInput) Total() float64 {
	if in.Flight == nil || in.Search == nil {
		return 0
	}
	return in.Flight.Price * float64(in.Search.Seats)
}

// PassengerIDs lists passenger ids in form order
func (in PaymentInput) PassengerIDs() []string {
	ids := make([]string, len(in.Passengers))
	for i, p := range in.Passengers {
		ids[i] = p.ID
	}
	return ids
}

// ConfirmationInput feeds the confirmation screen
type ConfirmationInput struct {
	Booking              *backend.Booking    `json:"booking"`
	Flight               *backend.Flight     `json:"flight"`
	Passengers           []backend.Passenger `json:"passengers"`
	Payment              *backend.Payment    `json:"payment,omitempty"`
	PaymentIntentID      string              `json:"paymentIntentId"`
	TotalAmount          float64             `json:"totalAmount"`
	PaymentRecordPending bool                `json:"paymentRecordPending,omitempty"`
}

func (ConfirmationInput) Step() Step { return StepConfirmation }

func (in ConfirmationInput) Validate() error {
	if in.Booking == nil || in.Flight == nil || len(in.Passengers) == 0 {
		return fmt.Errorf("%w: booking confirmation", ErrIncompleteState)
	}
	return nil
}

// Redirect tells the browser shell to navigate after a delay
type Redirect struct {
	To      string `json:"to"`
	AfterMs int64  `json:"afterMs"`
}

// HomeRedirect is the directive attached to incomplete-state errors
func HomeRedirect(delay time.Duration) Redirect {
	return Redirect{To: "/home", AfterMs: delay.Milliseconds()}
}
