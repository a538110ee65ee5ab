package routes

import (
	"nutrilog/config"
	"nutrilog/controllers"
	"nutrilog/middlewares"
	"nutrilog/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	logSvc := services.NewMealLogService(config.DB)
	reportSvc := services.NewReportService(logSvc)
	geminiSvc := services.NewGeminiService()
	hub := services.NewRealtimeHub()

	mealCtl := controllers.NewMealController(geminiSvc, logSvc, hub)
	reportCtl := controllers.NewReportController(reportSvc, logSvc)
	importCtl := controllers.NewImportController(logSvc)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/session", controllers.CreateSession)
	}

	// Protected meal routes
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("/analyze", mealCtl.AnalyzeMeal)
		meals.GET("", reportCtl.MyMeals)
	}

	// Admin dashboard
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminMiddleware())
	{
		admin.GET("/report", reportCtl.GetReport)
		admin.GET("/daily", reportCtl.GetDailySeries)
		admin.GET("/users", reportCtl.ListUsers)
		admin.POST("/import", importCtl.ImportRows)
		admin.POST("/report/email", reportCtl.EmailReport)
		admin.GET("/live", rtCtl.LiveFeedWS)
	}

	return r
}
