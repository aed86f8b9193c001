package routes

import (
	"log"

	"github.com/Vanshhsoni/kissan/config"
	"github.com/Vanshhsoni/kissan/controllers"
	"github.com/Vanshhsoni/kissan/middlewares"
	"github.com/Vanshhsoni/kissan/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Services
	weather := services.NewWeatherService()
	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
		push = nil
	}
	advisorySvc := services.NewAdvisoryService(config.DB, weather, hub, push)
	cropSvc := services.NewCropService(config.DB)
	logSvc := services.NewActivityLogService(config.DB)
	chatSvc := services.NewChatService(config.DB)

	catalog, err := services.LoadCropCatalog(config.CatalogPath())
	if err != nil {
		log.Printf("crop catalog unavailable: %v", err)
	}

	// Controllers
	cropCtrl := controllers.NewCropController(cropSvc, catalog)
	logCtrl := controllers.NewActivityLogController(logSvc, cropSvc)
	advisoryCtrl := controllers.NewAdvisoryController(advisorySvc, cropSvc)
	weatherCtrl := controllers.NewWeatherController(weather)
	dashboardCtrl := controllers.NewDashboardController(cropSvc, advisorySvc)
	aiCtrl := controllers.NewAIController(chatSvc, cropSvc)
	deviceCtrl := controllers.NewDeviceController(push)
	rtCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/districts", controllers.Districts)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	crops := r.Group("/crops")
	crops.Use(middlewares.AuthMiddleware())
	{
		crops.GET("", cropCtrl.ListCrops)
		crops.POST("", cropCtrl.AddCrop)
		crops.GET("/catalog", cropCtrl.Catalog)
		crops.GET("/:id", cropCtrl.GetCrop)
		crops.POST("/:id/sow", cropCtrl.SowCrop)
		crops.POST("/:id/harvest", cropCtrl.HarvestCrop)
		crops.POST("/:id/photo", cropCtrl.UploadCropPhoto)

		crops.POST("/:id/log", logCtrl.SaveDailyLog)
		crops.GET("/:id/log/today", logCtrl.TodayLog)
		crops.GET("/:id/calendar", logCtrl.Calendar)

		crops.GET("/:id/advisories", advisoryCtrl.List)
		crops.POST("/:id/advisories/generate", advisoryCtrl.Generate)
		crops.POST("/:id/advisories/read", advisoryCtrl.MarkAllRead)
	}

	app := r.Group("/")
	app.Use(middlewares.AuthMiddleware())
	{
		app.GET("/dashboard", dashboardCtrl.Dashboard)
		app.GET("/stats", advisoryCtrl.Stats)
		app.GET("/weather", weatherCtrl.Summary)
		app.GET("/weather/forecast", weatherCtrl.Forecast)

		app.GET("/ai/context", aiCtrl.UserContext)
		app.POST("/ai/chat", aiCtrl.SaveChat)
		app.GET("/ai/chats", aiCtrl.RecentChats)
		app.GET("/ai/tips", aiCtrl.FarmingTips)

		app.POST("/devices", deviceCtrl.RegisterDevice)
		app.POST("/devices/toggle", controllers.ToggleNotifications)

		app.GET("/ws/advisories", rtCtrl.AdvisoriesWS)
	}

	return r
}
