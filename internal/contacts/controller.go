package contacts

import (
	"net/http"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Submit(c *gin.Context)
	AdminList(c *gin.Context)
	UpdateStatus(c *gin.Context)
	MarkRead(c *gin.Context)
	Respond(c *gin.Context)
	Delete(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Submit godoc
// @Summary Send a message through the contact form
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body ContactForm true "Contact form"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Router /contacts [post]
func (ctrl *controller) Submit(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	contact, err := ctrl.service.Submit(c.Request.Context(), middleware.CurrentSession(c), form)
	if err != nil {
		middleware.RespondError(c, err, "Failed to send your message")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Thank you! Your message has been sent.", contact, nil)
}

func (ctrl *controller) AdminList(c *gin.Context) {
	var q AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.AdminList(c.Request.Context(), middleware.CurrentSession(c), q)
	if err != nil {
		middleware.RespondError(c, err, "Failed to retrieve contacts")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Contacts retrieved successfully", AdminListResponse{
		Contacts: list,
		Count:    len(list),
		Unread:   CountUnread(list),
		Controls: middleware.ControlsFor(c),
	}, nil)
}

func (ctrl *controller) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	contact, err := ctrl.service.UpdateStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req)
	if err != nil {
		middleware.RespondError(c, err, "Failed to update contact status")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Contact status updated", contact, nil)
}

func (ctrl *controller) MarkRead(c *gin.Context) {
	contact, err := ctrl.service.MarkRead(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err, "Failed to mark contact as read")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Contact marked as read", contact, nil)
}

func (ctrl *controller) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	contact, err := ctrl.service.Respond(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), req)
	if err != nil {
		middleware.RespondError(c, err, "Failed to send response")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Response sent", contact, nil)
}

func (ctrl *controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		middleware.RespondError(c, err, "Failed to delete contact")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Contact deleted successfully", nil, nil)
}
