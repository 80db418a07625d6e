package checkout

import "github.com/gin-gonic/gin"

func SetupCheckoutRoutes(router *gin.RouterGroup, controller Controller) {
	booking := router.Group("/booking")
	{
		booking.POST("/payment-intent", controller.CreateIntent)
		booking.POST("/pay", controller.Pay)
		booking.GET("/confirmation", controller.Confirmation)
	}
}
