package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Teachers  *TeacherHandler
	Students  *StudentHandler
	Events    *EventHandler
	Config    *ConfigHandler
	Backup    *BackupHandler
	Reports   *ReportHandler
	Dashboard *DashboardHandler
}

// RegisterRoutes mounts all API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api/v1")

	teachers := api.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.POST("", h.Teachers.Create)
		teachers.GET("/:id", h.Teachers.Get)
		teachers.PUT("/:id", h.Teachers.Update)
		teachers.DELETE("/:id", h.Teachers.Delete)
		teachers.POST("/:id/sessions", h.Teachers.AddSession)
		teachers.DELETE("/:id/sessions/:sessionId", h.Teachers.RemoveSession)
		teachers.GET("/:id/payment", h.Teachers.Payment)
		teachers.GET("/:id/whatsapp", h.Teachers.WhatsAppLink)
	}

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id", h.Students.Get)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
		students.POST("/:id/grades", h.Students.AddGrade)
		students.DELETE("/:id/grades/:gradeId", h.Students.RemoveGrade)
		students.GET("/:id/report", h.Students.Report)
		students.GET("/:id/whatsapp", h.Students.WhatsAppLink)
	}

	events := api.Group("/events")
	{
		events.GET("", h.Events.List)
		events.POST("", h.Events.Create)
		events.POST("/scan", h.Events.Scan)
		events.GET("/:id", h.Events.Get)
		events.PUT("/:id", h.Events.Update)
		events.DELETE("/:id", h.Events.Delete)
		events.GET("/:id/whatsapp", h.Events.WhatsAppLink)
	}

	api.GET("/config", h.Config.Get)
	api.PUT("/config", h.Config.Update)

	backup := api.Group("/backup")
	{
		backup.GET("/export", h.Backup.Export)
		backup.POST("/import", h.Backup.Import)
		backup.POST("/reset", h.Backup.Reset)
	}

	reports := api.Group("/reports")
	{
		reports.POST("", h.Reports.Request)
		reports.GET("/download", h.Reports.Download)
		reports.GET("/:id", h.Reports.Status)
	}

	api.GET("/dashboard", h.Dashboard.Stats)
	api.POST("/whatsapp/link", h.Dashboard.WhatsAppLink)
}
