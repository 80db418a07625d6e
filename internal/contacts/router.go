package contacts

import "github.com/gin-gonic/gin"

func SetupContactRoutes(router *gin.RouterGroup, controller Controller) {
	router.POST("/contacts", controller.Submit)

	admin := router.Group("/admin/contacts")
	{
		admin.GET("", controller.AdminList)
		admin.PATCH("/:id/status", controller.UpdateStatus)
		admin.PATCH("/:id/read", controller.MarkRead)
		admin.PATCH("/:id/respond", controller.Respond)
		admin.DELETE("/:id", controller.Delete)
	}
}
