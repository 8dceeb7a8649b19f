package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tapcoin_webapp/internal/config"
	"tapcoin_webapp/internal/db"
	httpServer "tapcoin_webapp/internal/http"
	"tapcoin_webapp/internal/http/middleware"
	"tapcoin_webapp/internal/jobs"
	"tapcoin_webapp/internal/logger"
	"tapcoin_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	// config.Load logs fatals, so the logger comes up first from raw env
	// and is re-initialized once .env values are merged in
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	hub := httpServer.RegisterRoutes(r, dbPool, cfg, version)

	// in-process daily reset trigger
	var scheduler *jobs.Scheduler
	if cfg.ResetCronSpec != "" {
		scheduler = jobs.NewScheduler(service.NewResetService(dbPool), hub)
		if err := scheduler.Start(context.Background(), cfg.ResetCronSpec); err != nil {
			logger.Fatal("failed to start scheduler", "error", err)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
