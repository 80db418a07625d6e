package passengers

import (
	"github.com/gin-gonic/gin"
)

// Router handles passenger routes
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	booking := rg.Group("/booking/passengers")
	{
		booking.GET("", r.controller.Forms)
		booking.POST("", r.controller.Submit)
	}

	admin := rg.Group("/admin/passengers")
	{
		admin.GET("", r.controller.AdminList)
		admin.DELETE("/:id", r.controller.Delete)
	}
}
