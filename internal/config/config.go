package config

import (
	"os"
	"strconv"
	"strings"

	"tapcoin_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	DatabaseURL      string
	BotToken         string
	BotUsername      string
	WebAppShortName  string
	JWTSecret        string
	AdminTelegramIDs []int64 // добавить в env tg id админов

	// Redis (rate limiting); empty addr disables the limiter
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Tap limits
	TapRateLimit  int
	TapRateWindow int
	MaxTapsPerReq int

	// Daily reset cron (in-process trigger); empty disables
	ResetCronSpec string

	LogLevel string
	LogJSON  bool
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "TapCoinBot" // ! если не установлено в env !
	}

	shortName := os.Getenv("WEBAPP_SHORT_NAME")
	if shortName == "" {
		shortName = "tapcoin"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Проверка тг id админов !! ЧЕРЕЗ ЗАПЯТУЮ В ENV !!
	var adminIDs []int64
	adminIDsStr := os.Getenv("ADMIN_TELEGRAM_IDS")
	if adminIDsStr != "" {
		for _, idStr := range strings.Split(adminIDsStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				adminIDs = append(adminIDs, id)
			}
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	tapRateLimit := 30 // макс tap-запросов за ->
	if v := os.Getenv("TAP_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tapRateLimit = n
		}
	}

	tapRateWindow := 60 // -> 60 секунд
	if v := os.Getenv("TAP_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tapRateWindow = n
		}
	}

	maxTapsPerReq := 50
	if v := os.Getenv("MAX_TAPS_PER_REQUEST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTapsPerReq = n
		}
	}

	resetCron := os.Getenv("RESET_CRON")
	if resetCron == "" {
		resetCron = "0 0 * * *" // полночь UTC
	}
	if resetCron == "off" {
		resetCron = ""
	}

	return &Config{
		AppPort:          port,
		DatabaseURL:      dbURL,
		BotToken:         botToken,
		BotUsername:      botUsername,
		WebAppShortName:  shortName,
		JWTSecret:        jwtSecret,
		AdminTelegramIDs: adminIDs,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		TapRateLimit:     tapRateLimit,
		TapRateWindow:    tapRateWindow,
		MaxTapsPerReq:    maxTapsPerReq,
		ResetCronSpec:    resetCron,
		LogLevel:         getEnvDefault("LOG_LEVEL", "info"),
		LogJSON:          os.Getenv("LOG_JSON") == "true",
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
