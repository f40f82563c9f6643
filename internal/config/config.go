package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Weaviate WeaviateConfig
	Groq     GroqConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type WeaviateConfig struct {
	Host         string
	Scheme       string
	APIKey       string
	CohereAPIKey string
	ClassName    string
	TargetVector string
}

type GroqConfig struct {
	APIKey  string // required, process refuses to start without it
	BaseURL string
	Model   string
}

type ChatConfig struct {
	MemoryTurns       int // history cap, measured in messages
	SearchLimit       int
	MaxReviewsChars   int
	SessionTTLMinutes int // 0 = sessions never expire
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Weaviate: WeaviateConfig{
			Host:         getEnv("WEAVIATE_HOST", ""),
			Scheme:       getEnv("WEAVIATE_SCHEME", "https"),
			APIKey:       getEnv("WEAVIATE_API_KEY", ""),
			CohereAPIKey: getEnv("COHERE_API_KEY", ""),
			ClassName:    getEnv("WEAVIATE_CLASS_NAME", "Product"),
			TargetVector: getEnv("WEAVIATE_TARGET_VECTOR", "mm_vec"),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_BASE_URL", ""),
			Model:   getEnv("GROQ_MODEL", "openai/gpt-oss-120b"),
		},
		Chat: ChatConfig{
			MemoryTurns:       getEnvAsInt("CHAT_MEMORY_TURNS", 12),
			SearchLimit:       getEnvAsInt("CHAT_SEARCH_LIMIT", 5),
			MaxReviewsChars:   getEnvAsInt("CHAT_MAX_REVIEWS_CHARS", 2000),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 0),
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
