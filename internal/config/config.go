package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort       string
	PostgresDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	RedisURL       string
	SMTPHost       string
	SMTPPort       int
	SMTPSecure     bool
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	UploadDir      string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		PostgresDSN:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getDuration("TOKEN_TTL", 7*24*time.Hour),
		RedisURL:       getEnv("REDIS_URL", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getInt("SMTP_PORT", 587),
		SMTPSecure:     getBool("SMTP_SECURE", false),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		SMTPFrom:       getEnv("SMTP_FROM", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
