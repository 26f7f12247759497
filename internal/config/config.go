package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SupportEmail       string
	DecisionTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	JwtSecret    string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string // embedding model
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "gemini-1.5-flash"
	VisionModel       string // override for the image-analysis stage, optional
}

type SearchConfig struct {
	Provider      string // "pgvector" or "chroma"
	ChromaBaseURL string
	Collection    string
}

type SessionConfig struct {
	Backend string // "memory" or "redis"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SupportEmail:       getEnv("SUPPORT_TEAM_EMAIL", ""),
			DecisionTopic:      getEnv("DECISION_TOPIC_NAME", "SUPPORT_DECISION_MADE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ReliefConnect"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JwtSecret:    getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			VisionModel:       getEnv("LLM_VISION_MODEL", ""),
		},
		Search: SearchConfig{
			Provider:      getEnv("SEARCH_PROVIDER", "pgvector"),
			ChromaBaseURL: getEnv("CHROMA_BASE_URL", "http://localhost:8000"),
			Collection:    getEnv("CHROMA_COLLECTION", "relief_products"),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", "memory"),
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
