package main

import (
	"log"
	"net/http"

	_ "tasktrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/handler"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/router"
	"tasktrack/internal/service"
)

// @title Task Tracker API
// @version 1.0
// @description Multi-tenant task tracking with JWT authentication and owner-scoped queries.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.AutoMigrate {
		if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
			log.Fatalf("auto-migrate: %v", err)
		}
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	router.Register(e, cfg, authHandler, taskHandler, userService)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
