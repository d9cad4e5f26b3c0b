package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-schedule-api/core/cache"
	"team-schedule-api/core/config"
	"team-schedule-api/core/database"
	"team-schedule-api/core/logger"
	"team-schedule-api/core/middleware"
	"team-schedule-api/modules/availability"
	"team-schedule-api/modules/booking"
	"team-schedule-api/modules/host"
	"team-schedule-api/modules/notification"
	"team-schedule-api/modules/teamevent"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots the whole application: config, logging, postgres, redis, the
// HTTP API and the asynq worker. It blocks until SIGINT/SIGTERM and then
// shuts both servers down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Environment)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer redisCache.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	e := echo.New()
	e.HideBanner = true

	mw := middleware.NewMiddleware()
	mw.Setup(e)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Module wiring, bottom of the dependency graph first.
	host.Init(e, db, mw)
	bookingSvc, bookingRepo := booking.Init(e, db, mw)
	availabilitySvc := availability.Init(e, db, mw, bookingRepo)
	notificationSvc := notification.Init(e, db, mw, asynqClient)
	teamevent.Init(e, db, redisCache, mw, cfg.Lock, availabilitySvc, bookingSvc, notificationSvc)

	// Worker consumes the notification queue next to the API.
	asynqServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
	})
	asynqMux := asynq.NewServeMux()
	notificationSvc.RegisterHandlers(asynqMux)

	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			logger.Error("asynq server stopped", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("HTTP server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	asynqServer.Shutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
