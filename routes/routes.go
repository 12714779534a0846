package routes

import (
	"net/http"
	"time"

	"shiftdesk/handlers"
	"shiftdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRosterRoutes registers roster endpoints.
func RegisterRosterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/app/roster")
	{
		api.GET("", hb.ListEmployeesHandler)
		api.POST("", hb.CreateEmployeeHandler)
		api.PUT("/:id", hb.UpdateEmployeeHandler)
		api.DELETE("/:id", hb.DeleteEmployeeHandler)
	}
}

// RegisterDemandRoutes registers per-date demand endpoints.
func RegisterDemandRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/app/demand")
	{
		api.GET("/:date", hb.GetDemandHandler)
		api.GET("/:date/draft", hb.GetDemandDraftHandler)
		api.POST("/:date/slots", hb.AppendSlotHandler)
		api.PUT("/:date", hb.ReplaceDemandHandler)
	}
}

// RegisterSettingsRoutes registers settings and job catalog endpoints.
func RegisterSettingsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/app/settings")
	{
		api.GET("", hb.GetSettingsHandler)
		api.PUT("", hb.UpdateSettingsHandler)
		api.POST("/jobs", hb.AddJobHandler)
		api.PUT("/jobs/:index", hb.RenameJobHandler)
		api.DELETE("/jobs/:index", hb.RemoveJobHandler)
	}
}

// RegisterScheduleRoutes registers schedule generation endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/app/schedule")
	{
		api.POST("/:date/generate", hb.GenerateScheduleHandler)
		api.GET("/:date", hb.GetScheduleHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the health monitor.
// A degraded snapshot answers 503 so load balancers can drain the instance.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		checks := utils.GetHealthStatus()
		if checks.Degraded() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
	})
}

// RegisterRecordsRoutes registers the roster and demand contracts served by the records service.
func RegisterRecordsRoutes(r *gin.Engine, rh *handlers.RecordsHandler) {
	employees := r.Group("/api/employees")
	{
		employees.GET("", rh.ListEmployeesHandler)
		employees.POST("", rh.CreateEmployeeHandler)
		employees.PUT("/:id", rh.UpdateEmployeeHandler)
		employees.DELETE("/:id", rh.DeleteEmployeeHandler)
	}
	demand := r.Group("/demand")
	{
		demand.GET("/:date", rh.GetDemandHandler)
		demand.POST("/:date", rh.ReplaceDemandHandler)
	}
	RegisterHealthRoute(r)
}

// UseCORS installs the CORS policy for the browser UI.
func UseCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))
}

// RegisterRoutes centralizes registration of all app endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	UseCORS(r)

	RegisterRosterRoutes(r, hb)
	RegisterDemandRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterHealthRoute(r)
}
