package flights

import (
	"skybook/internal/backend"
	"skybook/internal/shared/middleware"
	"skybook/internal/wizard"
)

const MessageNoFlights = "No flights found"

// FlightView is a flight row with its computed duration
type FlightView struct {
	backend.Flight
	Duration string `json:"duration,omitempty"`
}

type SearchResponse struct {
	Criteria wizard.SearchCriteria `json:"criteria"`
	Flights  []FlightView          `json:"flights"`
	Count    int                   `json:"count"`
	Empty    bool                  `json:"empty"`
	Message  string                `json:"message,omitempty"`
	Sort     string                `json:"sort,omitempty"`
	Source   string                `json:"source"`
}

type PassengerStepResponse struct {
	Flight backend.Flight        `json:"flight"`
	Search wizard.SearchCriteria `json:"searchData"`
	Seats  int                   `json:"seats"`
}

type AdminListResponse struct {
	Flights  []backend.Flight    `json:"flights"`
	Count    int                 `json:"count"`
	Controls middleware.Controls `json:"controls"`
}

type EditFormResponse struct {
	ID       string              `json:"id"`
	Form     FlightForm          `json:"form"`
	Controls middleware.Controls `json:"controls"`
}

func toViews(flights []backend.Flight) []FlightView {
	views := make([]FlightView, len(flights))
	for i, f := range flights {
		views[i] = FlightView{Flight: f}
		if d, ok := Duration(f); ok {
			views[i].Duration = FormatDuration(d)
		}
	}
	return views
}
