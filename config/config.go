package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort      string
	DatabaseURL     string
	AdminToken      string
	AdminJWTSecret  string
	GMPRefreshCron  string
	CacheTTLMinutes string
	LogLevel        string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		AdminJWTSecret:  getEnv("ADMIN_JWT_SECRET", ""),
		GMPRefreshCron:  getEnv("GMP_REFRESH_CRON", "@hourly"),
		CacheTTLMinutes: getEnv("CACHE_TTL_MINUTES", "5"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// GetCacheTTL returns the listing cache TTL from environment or default.
// Derived statuses shift at calendar-day boundaries, so the TTL is kept
// short rather than caching assembled listings indefinitely.
func (c *Config) GetCacheTTL() time.Duration {
	if c.CacheTTLMinutes == "" {
		return 5 * time.Minute
	}

	minutes, err := strconv.Atoi(c.CacheTTLMinutes)
	if err != nil || minutes <= 0 {
		logrus.Warnf("Invalid CACHE_TTL_MINUTES value: %s, using default 5 minutes", c.CacheTTLMinutes)
		return 5 * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

// ApplyLogLevel configures the global logrus level from config.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
