package flights

import (
	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes registers the search, selection and admin flight routes.
// Admin routes carry no role check of their own; the backend rejects
// non-admin tokens.
func SetupFlightRoutes(router *gin.RouterGroup, controller Controller) {
	publicFlights := router.Group("/flights")
	{
		publicFlights.GET("/search", controller.Search) // GET /api/v1/flights/search
		publicFlights.GET("/:id", controller.GetFlight) // GET /api/v1/flights/:id
	}

	router.POST("/booking/select", controller.Select) // POST /api/v1/booking/select

	adminFlights := router.Group("/admin/flights")
	{
		adminFlights.GET("", controller.AdminList)         // GET /api/v1/admin/flights?q=&status=
		adminFlights.GET("/:id/edit", controller.EditForm) // GET /api/v1/admin/flights/:id/edit
		adminFlights.POST("", controller.Create)           // POST /api/v1/admin/flights
		adminFlights.PUT("/:id", controller.Update)        // PUT /api/v1/admin/flights/:id
		adminFlights.DELETE("/:id", controller.Delete)     // DELETE /api/v1/admin/flights/:id
	}
}
