package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Intake   IntakeConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// IntakeConfig tunes the conversational core. The command words are mapped
// per deployment so the bot can run in any language.
type IntakeConfig struct {
	PageSize       int
	SessionTTL     time.Duration
	TurnTimeout    time.Duration
	RestartWord    string
	EndWord        string
	BackWord       string
	CompletedTopic string
}

type SMTPConfig struct {
	Host        string
	Port        int
	Email       string
	Password    string
	SenderName  string
	ClinicInbox string
}

type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Intake: IntakeConfig{
			PageSize:       getEnvAsInt("INTAKE_PAGE_SIZE", 6),
			SessionTTL:     getEnvAsDuration("INTAKE_SESSION_TTL", 72*time.Hour),
			TurnTimeout:    getEnvAsDuration("INTAKE_TURN_TIMEOUT", 10*time.Second),
			RestartWord:    getEnv("INTAKE_CMD_RESTART", "restart"),
			EndWord:        getEnv("INTAKE_CMD_END", "end"),
			BackWord:       getEnv("INTAKE_CMD_BACK", "back"),
			CompletedTopic: getEnv("INTAKE_COMPLETED_TOPIC_NAME", "INTAKE_COMPLETED"),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Email:       getEnv("SMTP_EMAIL", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			SenderName:  getEnv("SMTP_SENDER_NAME", "Clinic Intake"),
			ClinicInbox: getEnv("CLINIC_INBOX_EMAIL", ""),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
