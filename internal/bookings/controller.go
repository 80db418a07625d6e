package bookings

import (
	"net/http"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// AdminList godoc
// @Summary List bookings for the admin console
// @Tags admin
// @Produce json
// @Param status query string false "preparing, confirmed, cancelled, declined or all"
// @Param q query string false "Customer, reference or flight number"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/bookings [get]
func (ctrl *Controller) AdminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.AdminList(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve bookings")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", AdminListResponse{
		Bookings: list,
		Count:    len(list),
		Controls: middleware.ControlsFor(c),
	}, nil)
}

// UpdateStatus godoc
// @Summary Confirm or decline a preparing booking
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /admin/bookings/{id}/status [put]
func (ctrl *Controller) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.UpdateStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req)
	if err != nil {
		middleware.RespondError(c, err, "Failed to update booking status")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking status updated", result, nil)
}

func (ctrl *Controller) MyBookings(c *gin.Context) {
	list, err := ctrl.service.MyBookings(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve your bookings")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", MyBookingsResponse{
		Bookings: list,
		Count:    len(list),
	}, nil)
}
