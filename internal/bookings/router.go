package bookings

import (
	"github.com/gin-gonic/gin"
)

// Router handles booking routes
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/me", r.controller.MyBookings)

	admin := rg.Group("/admin/bookings")
	{
		admin.GET("", r.controller.AdminList)
		admin.PUT("/:id/status", r.controller.UpdateStatus)
	}
}
