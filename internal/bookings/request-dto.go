package bookings

import "skybook/internal/backend"

type AdminListQuery struct {
	Status string `form:"status"`
	Q      string `form:"q"`
}

type UpdateStatusRequest struct {
	Status backend.BookingStatus `json:"status" validate:"required"`
}
