// File: shiftdesk/cmd/records/main.go
// Command records serves the roster and demand contracts backed by MongoDB.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftdesk/config"
	"shiftdesk/database"
	demandRepo "shiftdesk/database/repository/demand"
	employeeRepo "shiftdesk/database/repository/employee"
	"shiftdesk/handlers"
	"shiftdesk/middleware"
	"shiftdesk/routes"
	"shiftdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger().Named("records")
	defer logger.Sync()

	database.InitDB()
	db := database.DB()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := employeeRepo.EnsureEmployeeIndexes(indexCtx, db); err != nil {
		logger.Warn("records: employee indexes", zap.Error(err))
	}
	if err := demandRepo.EnsureDemandIndexes(indexCtx, db); err != nil {
		logger.Warn("records: demand indexes", zap.Error(err))
	}
	indexCancel()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 30*time.Second, nil, database.MongoClient)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.UseCORS(router)

	recordsHandler := handlers.NewRecordsHandler(
		employeeRepo.NewMongoEmployeeRepo(db),
		demandRepo.NewMongoDemandRepo(db),
	)
	routes.RegisterRecordsRoutes(router, recordsHandler)

	port := cfg.RecordsPort
	if port == "" {
		port = "8081"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting records service on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("records: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("records: shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("records: server forced to shutdown: %v", err)
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("records: mongo disconnect failed", zap.Error(err))
	}
}
