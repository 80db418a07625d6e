package checkout

import (
	"errors"
	"net/http"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"
	"skybook/internal/wizard"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateIntent(c *gin.Context)
	Pay(c *gin.Context)
	Confirmation(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateIntent godoc
// @Summary Create a payment intent for the current booking
// @Tags booking
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /booking/payment-intent [post]
func (ctrl *controller) CreateIntent(c *gin.Context) {
	intent, err := ctrl.service.CreateIntent(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		middleware.RespondError(c, err, "Failed to initialize payment")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Payment intent created", intent, nil)
}

// Pay godoc
// @Summary Create the booking and confirm the payment
// @Tags booking
// @Accept json
// @Produce json
// @Param body body PayRequest true "Payment method from the hosted payment element"
// @Success 201 {object} response.StandardApiResponse
// @Failure 402 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /booking/pay [post]
func (ctrl *controller) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.Pay(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		middleware.RespondError(c, err, "Payment failed. Please try again.")
		return
	}

	message := "Booking confirmed"
	if result.PaymentRecordPending {
		message = "Booking confirmed. Payment record is pending."
	}
	response.RespondJSON(c, "success", http.StatusCreated, message, result, nil)
}

// Confirmation answers with a placeholder and a home redirect when there is
// no completed booking to show.
func (ctrl *controller) Confirmation(c *gin.Context) {
	result, err := ctrl.service.Confirmation(c.Request.Context(), middleware.CurrentSession(c))
	if errors.Is(err, wizard.ErrIncompleteState) {
		redirect := wizard.HomeRedirect(middleware.RedirectDelay())
		response.RespondJSON(c, "success", http.StatusOK, "No booking to confirm. Redirecting to home...", ConfirmationResponse{
			Placeholder: true,
			Redirect:    &redirect,
		}, nil)
		return
	}
	if err != nil {
		middleware.RespondError(c, err, "Failed to load booking confirmation")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking confirmation", ConfirmationResponse{ConfirmationInput: result}, nil)
}
