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
	Storage  StorageConfig
	Chat     ChatConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Backend        string // "local" or "minio"
	LocalDir       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type ChatConfig struct {
	// Retriever selects where embeddings live: "memory" or "pgvector".
	Retriever string
	// Strategy selects the conversation composer: "template" or "chain".
	Strategy string
	// Startup defaults for the behavior flags.
	ReferenceEnabled        bool
	ConversationModeEnabled bool
	RAGEnabled              bool
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "tei"
	EmbeddingBaseURL  string
	EmbeddingModel    string
	LLMProvider       string // "ollama" or "tgi"
	LLMBaseURL        string
	LLMModel          string
	LLMApiKey         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", "local"),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "./documents"),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:    getEnv("MINIO_BUCKET", "documents"),
			MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		Chat: ChatConfig{
			Retriever:               getEnv("CHAT_RETRIEVER", "memory"),
			Strategy:                getEnv("CHAT_STRATEGY", "template"),
			ReferenceEnabled:        getEnvAsBool("CHAT_REFERENCE_ENABLED", true),
			ConversationModeEnabled: getEnvAsBool("CHAT_CONVERSATION_MODE_ENABLED", true),
			RAGEnabled:              getEnvAsBool("CHAT_RAG_ENABLED", true),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", "http://localhost:11434"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMApiKey:         getEnv("LLM_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
