package http

import (
	"os"
	"strconv"
	"time"

	"tapcoin_webapp/internal/config"
	"tapcoin_webapp/internal/http/handlers"
	"tapcoin_webapp/internal/http/middleware"
	"tapcoin_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *ws.Hub {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		BotToken:         cfg.BotToken,
		BotUsername:      cfg.BotUsername,
		WebAppShortName:  cfg.WebAppShortName,
		AdminTelegramIDs: cfg.AdminTelegramIDs,
		MaxTapsPerReq:    cfg.MaxTapsPerReq,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	tapRL := middleware.TapRateLimit(cfg.TapRateLimit, time.Duration(cfg.TapRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)

	// Account
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/transactions", middleware.JWT(), h.Transactions)

	// Tapping
	v1.POST("/tap", middleware.JWT(), tapRL, h.Tap)
	v1.POST("/energy/boost", middleware.JWT(), h.Boost)
	v1.POST("/earnings/collect", middleware.JWT(), h.CollectEarnings)

	// Upgrade cards
	v1.GET("/cards", middleware.JWT(), h.Cards)
	v1.POST("/cards/:id/upgrade", middleware.JWT(), h.UpgradeCard)

	// Daily streak
	v1.GET("/rewards/daily", middleware.JWT(), h.DailyStatus)
	v1.POST("/rewards/daily/claim", middleware.JWT(), h.ClaimDaily)

	// Daily combo
	combo := v1.Group("/combo")
	combo.Use(middleware.JWT())
	{
		combo.GET("", h.ComboStatus)
		combo.POST("/cards/:id", h.FindComboCard)
		combo.POST("/claim", h.ClaimCombo)
	}

	// Referrals
	referrals := v1.Group("/referrals")
	referrals.Use(middleware.JWT())
	{
		referrals.GET("", h.Referrals)
		referrals.GET("/link", h.ReferralLink)
		referrals.POST("/:id/claim", h.ClaimReferral)
	}

	// Missions
	v1.GET("/missions", middleware.JWT(), h.Missions)
	v1.POST("/missions/:id/complete", middleware.JWT(), h.CompleteMission)

	// League & leaderboard
	v1.GET("/league", middleware.JWT(), h.League)
	v1.POST("/league/promote", middleware.JWT(), h.PromoteLeague)
	v1.GET("/leaderboard", h.Leaderboard)

	// Admin
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT())
	{
		admin.POST("/reset", h.AdminReset)
	}

	// WebSocket for live state pushes
	hub := ws.NewHub()
	r.GET("/ws", h.WS(hub))

	return hub
}
