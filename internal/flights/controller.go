package flights

import (
	"net/http"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Search(c *gin.Context)
	GetFlight(c *gin.Context)
	Select(c *gin.Context)

	AdminList(c *gin.Context)
	EditForm(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Search godoc
// @Summary Search flights
// @Description Lists inventory, filters by route and date, sorts by price, duration or departure
// @Tags flights
// @Produce json
// @Param from query string false "Departure airport or city"
// @Param to query string false "Arrival airport or city"
// @Param departureDate query string false "YYYY-MM-DD"
// @Param seats query int false "Passenger count"
// @Param fareClass query string false "economy, business or first"
// @Param sort query string false "price, duration or departure"
// @Success 200 {object} response.StandardApiResponse
// @Router /flights/search [get]
func (ctrl *controller) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid search parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.Search(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to search flights")
		return
	}

	message := "Flights retrieved successfully"
	if result.Empty {
		message = MessageNoFlights
	}
	response.RespondJSON(c, "success", http.StatusOK, message, result, nil)
}

func (ctrl *controller) GetFlight(c *gin.Context) {
	flight, err := ctrl.service.GetFlight(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve flight")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Flight retrieved successfully", flight, nil)
}

// Select godoc
// @Summary Select a flight for booking
// @Tags booking
// @Accept json
// @Produce json
// @Param body body SelectFlightRequest true "Flight to book"
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /booking/select [post]
func (ctrl *controller) Select(c *gin.Context) {
	var req SelectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FlightID == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "flightId is required", nil, nil)
		return
	}

	in, err := ctrl.service.Select(c.Request.Context(), middleware.CurrentSession(c), req.FlightID)
	if err != nil {
		middleware.RespondError(c, err, "Failed to select flight")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight selected", PassengerStepResponse{
		Flight: *in.Flight,
		Search: *in.Search,
		Seats:  in.Seats(),
	}, nil)
}

func (ctrl *controller) AdminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	flights, err := ctrl.service.AdminList(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve flights")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flights retrieved successfully", AdminListResponse{
		Flights:  flights,
		Count:    len(flights),
		Controls: middleware.ControlsFor(c),
	}, nil)
}

func (ctrl *controller) EditForm(c *gin.Context) {
	id := c.Param("id")
	form, err := ctrl.service.EditForm(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		middleware.RespondError(c, err, "Failed to load flight")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Flight loaded for editing", EditFormResponse{
		ID:       id,
		Form:     *form,
		Controls: middleware.ControlsFor(c),
	}, nil)
}

func (ctrl *controller) Create(c *gin.Context) {
	var form FlightForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := ctrl.service.Create(c.Request.Context(), middleware.CurrentSession(c), form)
	if err != nil {
		middleware.RespondError(c, err, "Failed to create flight")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Flight created successfully", flight, nil)
}

func (ctrl *controller) Update(c *gin.Context) {
	var form FlightForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flight, err := ctrl.service.Update(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), form)
	if err != nil {
		middleware.RespondError(c, err, "Failed to update flight")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Flight updated successfully", flight, nil)
}

func (ctrl *controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.RespondError(c, err, "Failed to delete flight")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Flight deleted successfully", nil, nil)
}
