package routes

import (
	"naver-booking-notifier/config"
	"naver-booking-notifier/controllers"
	"naver-booking-notifier/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	r.POST("/auth/login", controllers.Login)
	r.GET("/health", controllers.Health)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("/today", controllers.GetTodayBookings)
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("/send-all", controllers.SendAllNotifications)
			notifications.POST("/send", controllers.SendNotification)
			notifications.POST("/remind", controllers.ScheduleReminder)
			notifications.GET("/preview", controllers.PreviewPayloads)
		}

		runs := api.Group("/runs")
		{
			runs.GET("", controllers.ListRuns)
			runs.GET("/latest", controllers.LatestRun)
		}

		api.POST("/session/refresh", controllers.RefreshSession)
	}

	return r
}
