package passengers

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

// Forms godoc
// @Summary Blank passenger forms for the selected flight
// @Tags booking
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /booking/passengers [get]
func (ctrl *Controller) Forms(c *gin.Context) {
	forms, err := ctrl.service.Forms(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		middleware.RespondError(c, err, "Failed to load passenger forms")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Passenger forms ready", forms, nil)
}

// Submit godoc
// @Summary Submit passenger details
// @Tags booking
// @Accept json
// @Produce json
// @Param body body SubmitPassengersRequest true "One entry per seat"
// @Success 200 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /booking/passengers [post]
func (ctrl *Controller) Submit(c *gin.Context) {
	var req SubmitPassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	in, err := ctrl.service.Submit(c.Request.Context(), middleware.CurrentSession(c), req.Passengers)
	if err != nil {
		middleware.RespondError(c, err, "Failed to save passengers")
		return
	}

	placeholders := 0
	for _, p := range in.Passengers {
		if p.Placeholder {
			placeholders++
		}
	}

	response.RespondJSON(c, "success", http.StatusOK, "Passenger details saved", PaymentStepResponse{
		Flight:       *in.Flight,
		Search:       *in.Search,
		Passengers:   in.Passengers,
		TotalAmount:  in.Total(),
		Placeholders: placeholders,
	}, nil)
}

func (ctrl *Controller) AdminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.AdminList(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve passengers")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Passengers retrieved successfully", AdminListResponse{
		Passengers: list,
		Count:      len(list),
		Controls:   middleware.ControlsFor(c),
	}, nil)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.RespondError(c, err, "Failed to delete passenger")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Passenger deleted successfully", nil, nil)
}
