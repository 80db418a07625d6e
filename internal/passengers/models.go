package passengers

import (
	"time"
)

// PassengerForm is one passenger's details as typed. Every field is required.
type PassengerForm struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required"`
}

// ComputeAge returns completed years between dob and now. A dob of today is
// age 0. ok is false when dob does not parse or lies in the future.
func ComputeAge(dob string, now time.Time) (age int, ok bool) {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0, false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if born.After(today) {
		return 0, false
	}

	age = today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age, true
}
