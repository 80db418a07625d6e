package passengers

type SubmitPassengersRequest struct {
	Passengers []PassengerForm `json:"passengers"`
}

type AdminListQuery struct {
	Q string `form:"q"`
}
