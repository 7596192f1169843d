package config

import (
	"time"

	"booklending-service/internal/infrastructure"
)

type Config struct {
	Port        string
	PostgresDSN string
	JWTSecret   string

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	NatsURL string

	EmailAPIKey     string
	EmailSenderName string
	EmailSender     string
	BaseURL         string

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

func Load() *Config {
	return &Config{
		Port:        infrastructure.GetEnvAsString("PORT", "3000"),
		PostgresDSN: infrastructure.GetEnvAsString("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=booklending port=5432 sslmode=disable"),
		JWTSecret:   infrastructure.GetEnvAsString("JWT_SECRET", ""),

		RedisURL:      infrastructure.GetEnvAsString("REDIS_URL", ""),
		RedisHost:     infrastructure.GetEnvAsString("REDIS_HOST", "localhost"),
		RedisPort:     infrastructure.GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword: infrastructure.GetEnvAsString("REDIS_PASSWORD", ""),
		RedisDB:       infrastructure.GetEnvAsInt("REDIS_DB", 0),

		NatsURL: infrastructure.GetEnvAsString("NATS_URL", ""),

		EmailAPIKey:     infrastructure.GetEnvAsString("EMAIL_API_KEY", ""),
		EmailSenderName: infrastructure.GetEnvAsString("EMAIL_SENDER_NAME", "Book Lending"),
		EmailSender:     infrastructure.GetEnvAsString("EMAIL_SENDER", ""),
		BaseURL:         infrastructure.GetEnvAsString("BASE_URL", "http://localhost:3000"),

		RateLimitWindow:      infrastructure.GetEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMaxRequests: infrastructure.GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 5),
	}
}
