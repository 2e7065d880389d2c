package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI          string
	DBName            string
	Port              string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	RestaurantEmail   string
	PrinterEmail      string
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	CORSOrigins       []string
	NotifyTimeout     time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:          getEnvOrDefault("MONGO_URI", ""),
		DBName:            getEnvOrDefault("DB_NAME", "tantawan"),
		Port:              getEnvOrDefault("PORT", "8080"),
		SMTPHost:          getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnvOrDefault("SMTP_USERNAME", ""),
		SMTPPassword:      getEnvOrDefault("SMTP_PASSWORD", ""),
		RestaurantEmail:   getEnvOrDefault("RESTAURANT_EMAIL", "info@tantawan.ch"),
		PrinterEmail:      getEnvOrDefault("PRINTER_EMAIL", ""),
		AdminEmail:        getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),
		CORSOrigins:       splitEnv("CORS_ORIGINS", "*"),
		NotifyTimeout:     getDurationEnv("NOTIFY_TIMEOUT", 10, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
