package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"naver-booking-notifier/config"
	"naver-booking-notifier/controllers"
	"naver-booking-notifier/routes"
	"naver-booking-notifier/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if err := config.InitLogger(os.Getenv("GIN_MODE") == "release"); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		// Missing credentials make every batch unproductive; refuse to start.
		config.Logger().Fatal("configuration incomplete", zap.Error(err))
	}

	store, err := services.NewRunLogStore(cfg.RunLogDir)
	if err != nil {
		config.Logger().Fatal("failed to open run log store", zap.Error(err))
	}

	clock := services.NewClock()
	client := services.NewSolapiClient(cfg)
	dispatcher := services.NewDispatcher(cfg, client, clock)
	session := services.NewNaverSession(cfg.BizID, cfg.ChromeProfileDir)
	defer session.Close()
	runner := services.NewBatchRunner(session, dispatcher, store, clock)

	// Warm the browser session up front; extraction re-initializes lazily if
	// this fails, so a bad saved login only logs here.
	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := session.EnsureReady(startupCtx); err != nil {
		config.Logger().Warn("browser session not ready, check the saved login", zap.Error(err))
	}
	cancel()

	if cfg.AutoDispatchCron != "" {
		c, err := services.StartAutoDispatch(cfg.AutoDispatchCron, runner)
		if err != nil {
			config.Logger().Fatal("invalid AUTO_DISPATCH_CRON", zap.Error(err))
		}
		defer c.Stop()
	}

	controllers.Setup(cfg, session, dispatcher, runner, store)

	r := routes.SetupRouter()
	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		config.Logger().Fatal("server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
