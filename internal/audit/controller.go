package audit

import (
	"net/http"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type ListResponse struct {
	Entries  []AuditEntry        `json:"entries"`
	Count    int                 `json:"count"`
	Controls middleware.Controls `json:"controls"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// List godoc
// @Summary List recorded booking discrepancies
// @Tags admin
// @Produce json
// @Param kind query string false "passenger_placeholder, booking_payment_failed or payment_record_failed"
// @Param limit query int false "Maximum entries, newest first"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/audit [get]
func (ctrl *Controller) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	entries, err := ctrl.service.List(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve audit entries")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Audit entries retrieved successfully", ListResponse{
		Entries:  entries,
		Count:    len(entries),
		Controls: middleware.ControlsFor(c),
	}, nil)
}
