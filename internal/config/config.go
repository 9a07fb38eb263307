package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Mirror    MirrorConfig
	Retention RetentionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ApiToken           string
}

type DatabaseConfig struct {
	Connection string
}

type MirrorConfig struct {
	Namespace string
	Topic     string
}

type RetentionConfig struct {
	TrashDays int
	PurgeCron string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ApiToken:           getEnv("API_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Mirror: MirrorConfig{
			Namespace: getEnv("WIDGET_MIRROR_NAMESPACE", "widget"),
			Topic:     getEnv("MIRROR_SYNC_TOPIC_NAME", "MIRROR_SYNC"),
		},
		Retention: RetentionConfig{
			TrashDays: getEnvAsInt("TRASH_RETENTION_DAYS", 30),
			PurgeCron: getEnv("TRASH_PURGE_CRON", "0 3 * * *"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
