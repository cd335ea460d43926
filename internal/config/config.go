package config

import (
	"os"
	"strconv"

	"social_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Redis for the rate limiters; empty addr disables them
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// OpenAI-compatible assistant API
	ChatAPIURL  string
	ChatAPIKey  string
	ChatModel   string
	ChatEnabled bool

	LogLevel string
	LogJSON  bool
}

// Load reads the configuration from the environment, with .env support.
// Missing required variables are fatal.
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

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	chatURL := os.Getenv("CHAT_API_URL")
	if chatURL == "" {
		chatURL = "https://api.groq.com/openai/v1"
	}
	chatModel := os.Getenv("CHAT_MODEL")
	if chatModel == "" {
		chatModel = "llama-3.1-8b-instant"
	}
	chatKey := os.Getenv("CHAT_API_KEY")

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		ChatAPIURL:    chatURL,
		ChatAPIKey:    chatKey,
		ChatModel:     chatModel,
		ChatEnabled:   chatKey != "",
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
}
