package backend

// Wire types for the remote REST backend. The backend owns every entity;
// these are the transient copies the BFF passes between screens.

// Location is one end of a flight leg
type Location struct {
	Airport string `json:"airport" validate:"required"`
	City    string `json:"city" validate:"required"`
	Time    string `json:"time" validate:"required"`
}

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

type Flight struct {
	ID             string       `json:"id"`
	Airline        string       `json:"airline"`
	FlightNumber   string       `json:"flightNumber"`
	Departure      Location     `json:"departure"`
	Arrival        Location     `json:"arrival"`
	Date           string       `json:"date"`
	Price          float64      `json:"price"`
	TotalSeats     int          `json:"totalSeats"`
	AvailableSeats int          `json:"availableSeats"`
	Status         FlightStatus `json:"status"`
}

// FlightInput is the admin create/update payload
type FlightInput struct {
	Airline        string       `json:"airline"`
	FlightNumber   string       `json:"flightNumber"`
	Departure      Location     `json:"departure"`
	Arrival        Location     `json:"arrival"`
	Date           string       `json:"date"`
	Price          float64      `json:"price"`
	TotalSeats     int          `json:"totalSeats"`
	AvailableSeats int          `json:"availableSeats"`
	Status         FlightStatus `json:"status"`
}

type Passenger struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passportNumber"`
	// Placeholder marks a record synthesized locally after the create call failed
	Placeholder bool `json:"placeholder,omitempty"`
}

type PassengerInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
}

type BookingStatus string

const (
	BookingStatusPreparing BookingStatus = "preparing"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusDeclined  BookingStatus = "declined"
)

type Booking struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"bookingId"`
	FlightID      string        `json:"flightId"`
	Flight        *Flight       `json:"flight,omitempty"`
	SeatsBooked   int           `json:"seatsBooked"`
	Passengers    []string      `json:"passengers"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        BookingStatus `json:"status"`
	BookingDate   string        `json:"bookingDate"`
}

// BookingInput is sent before payment; the backend creates it as "preparing"
type BookingInput struct {
	FlightID      string   `json:"flightId"`
	SeatsBooked   int      `json:"seatsBooked"`
	Passengers    []string `json:"passengers"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
	TotalAmount   float64  `json:"totalAmount"`
}

type PaymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	FlightID string  `json:"flightId"`
	Seats    int     `json:"seats"`
}

type PaymentIntent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

type Payment struct {
	ID              string  `json:"id"`
	BookingID       string  `json:"bookingId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Method          string  `json:"method"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

type PaymentInput struct {
	BookingID       string  `json:"bookingId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Method          string  `json:"method"`
}

type Contact struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	IsRead        bool   `json:"isRead"`
	AdminResponse string `json:"adminResponse,omitempty"`
	RespondedAt   string `json:"respondedAt,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
