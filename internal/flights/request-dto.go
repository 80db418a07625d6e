package flights

import (
	"skybook/internal/backend"
)

// SearchQuery is bound from the results screen query string
type SearchQuery struct {
	From          string `form:"from"`
	To            string `form:"to"`
	DepartureDate string `form:"departureDate"`
	ReturnDate    string `form:"returnDate"`
	Seats         int    `form:"seats"`
	FareClass     string `form:"fareClass"`
	Sort          string `form:"sort" validate:"omitempty,oneof=price duration departure"`
}

type SelectFlightRequest struct {
	FlightID string `json:"flightId" validate:"required"`
}

// FlightForm is the admin create/edit form
type FlightForm struct {
	Airline        string               `json:"airline" validate:"required"`
	FlightNumber   string               `json:"flightNumber" validate:"required"`
	Departure      backend.Location     `json:"departure"`
	Arrival        backend.Location     `json:"arrival"`
	Date           string               `json:"date" validate:"required"`
	Price          float64              `json:"price" validate:"gt=0"`
	TotalSeats     int                  `json:"totalSeats" validate:"min=1"`
	AvailableSeats int                  `json:"availableSeats" validate:"min=0,ltefield=TotalSeats"`
	Status         backend.FlightStatus `json:"status" validate:"omitempty,oneof=scheduled delayed cancelled"`
}

// AdminListQuery filters the admin flight console
type AdminListQuery struct {
	Q      string `form:"q"`
	Status string `form:"status"`
}

func formFromFlight(f backend.Flight) FlightForm {
	return FlightForm{
		Airline:        f.Airline,
		FlightNumber:   f.FlightNumber,
		Departure:      f.Departure,
		Arrival:        f.Arrival,
		Date:           f.Date,
		Price:          f.Price,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		Status:         f.Status,
	}
}

func (f FlightForm) input() backend.FlightInput {
	status := f.Status
	if status == "" {
		status = backend.FlightStatusScheduled
	}
	return backend.FlightInput{
		Airline:        f.Airline,
		FlightNumber:   f.FlightNumber,
		Departure:      f.Departure,
		Arrival:        f.Arrival,
		Date:           f.Date,
		Price:          f.Price,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		Status:         status,
	}
}
