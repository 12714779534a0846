// File: shiftdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftdesk/app"
	"shiftdesk/config"
	"shiftdesk/cron"
	"shiftdesk/database"
	settingsRepo "shiftdesk/database/repository/settings"
	"shiftdesk/handlers"
	"shiftdesk/middleware"
	"shiftdesk/routes"
	"shiftdesk/services/schedule"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	var deps app.Deps
	var mongoClient *mongo.Client
	if cfg.SettingsPersist {
		database.InitDB()
		mongoClient = database.MongoClient
		deps.SettingsRepo = settingsRepo.NewMongoSettingsRepo(database.DB())
	}
	cacheClient := utils.GetScheduleCacheClient()
	deps.Cache = schedule.NewRedisCache(cacheClient, cfg.ScheduleCacheTTL)

	application, err := app.New(cfg, logger, deps)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to assemble app: %v", err)
	}

	var (
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	if cfg.RegenerationMode == config.RegenerationQueue {
		queueClient = asynq.NewClient(cron.RedisOpt())
		application.UseNotifier(schedule.NewQueueTrigger(queueClient, logger.Named("queue")))
		worker = cron.InitRegenerationWorker(application.Coordinator, logger.Named("worker"))
	}

	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.RemoteTimeout)
	if err := application.Warm(warmCtx); err != nil {
		logger.Warn("main: initial load incomplete; continuing with cached state", zap.Error(err))
	}
	warmCancel()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 30*time.Second, []*redis.Client{cacheClient}, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewRosterHandler(application.Roster),
		handlers.NewDemandHandler(application.Demand),
		handlers.NewSettingsHandler(application.Settings),
		handlers.NewScheduleHandler(application.Coordinator, application.Settings),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (regeneration: %s)...", srv.Addr, cfg.RegenerationMode)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
