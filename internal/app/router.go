package app

import (
	"cohort_backend/docs"
	"cohort_backend/internal/config"
	"cohort_backend/internal/middleware"
	"cohort_backend/internal/model"
	"cohort_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 教务接口，需要 staff 或 admin 角色
	staff := router.Group("/api")
	staff.Use(middleware.AuthMiddleware(&cfg.JWT), middleware.RoleMiddleware(model.Staff, model.Admin))
	{
		a.registerScheduleRoutes(staff, c)
		a.registerCohortRoutes(staff, c)
		a.registerMeetingRoutes(staff, c)
	}
}

func (a *App) registerScheduleRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/reschedule", c.schedule.ApplyShift)
	group.GET("/reschedule/preview", c.schedule.PreviewShift)
}

func (a *App) registerCohortRoutes(group *gin.RouterGroup, c *controllers) {
	cohorts := group.Group("/cohorts")
	{
		cohorts.POST("", c.cohort.CreateCohort)
		cohorts.GET("", c.cohort.ListCohorts)
		cohorts.GET("/:table", c.cohort.GetCohort)
		cohorts.POST("/:table/renumber", c.schedule.Renumber)
		cohorts.GET("/:table/shifts", c.schedule.ListShifts)
		cohorts.GET("/:table/sessions", c.cohort.ListSessions)
		cohorts.POST("/:table/sessions", c.cohort.AddSessions)
		cohorts.PATCH("/:table/sessions/:id", c.cohort.UpdateSession)
		cohorts.POST("/:table/sessions/:id/materials", c.cohort.UploadMaterial)
	}
}

func (a *App) registerMeetingRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/meetings", c.meeting.CreateMeeting)
	group.GET("/meetings", c.meeting.ListMeetings)
}
