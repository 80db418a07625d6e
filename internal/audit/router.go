package audit

import "github.com/gin-gonic/gin"

func SetupAuditRoutes(router *gin.RouterGroup, controller *Controller) {
	router.GET("/admin/audit", controller.List)
}
