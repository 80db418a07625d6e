package passengers

import (
	"skybook/internal/backend"
	"skybook/internal/shared/middleware"
	"skybook/internal/wizard"
)

type FormsResponse struct {
	Flight backend.Flight        `json:"flight"`
	Search wizard.SearchCriteria `json:"searchData"`
	Seats  int                   `json:"seats"`
	Forms  []PassengerForm       `json:"forms"`
}

// PaymentStepResponse summarizes what the payment screen will charge for
type PaymentStepResponse struct {
	Flight       backend.Flight        `json:"flight"`
	Search       wizard.SearchCriteria `json:"searchData"`
	Passengers   []backend.Passenger   `json:"passengers"`
	TotalAmount  float64               `json:"totalAmount"`
	Placeholders int                   `json:"placeholders"`
}

type AdminListResponse struct {
	Passengers []backend.Passenger `json:"passengers"`
	Count      int                 `json:"count"`
	Controls   middleware.Controls `json:"controls"`
}
