package app

import (
	"go-hrms/internal/config"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned cleanup closes the database and Redis connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	// 1. Setup Infrastructure
	db, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		redisClient.Close()
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.IdempotencyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.NotificationCountHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, db, redisClient, logger); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}
