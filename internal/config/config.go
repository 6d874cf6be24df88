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
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	EmbeddingDim   int
	LLMModel       string
}

// RagConfig holds the retrieval and synthesis tuning knobs. DenseTopK and
// SparseTopK bound the candidate set coming out of the index; MinScore drops
// weak matches before the reranker sees them.
type RagConfig struct {
	ServedModelID    string
	ContextLength    int
	MinScore         float64
	DenseTopK        int
	SparseTopK       int
	HybridAlpha      float64
	HistoryWindow    int
	Temperature      float64
	ClassifyTimeout  time.Duration
	RetrieveTimeout  time.Duration
	SynthesisTimeout time.Duration
	DocumentsDir     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("RAG_API_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDim:   getEnvAsInt("EMBEDDING_MODEL_DIM", 768),
			LLMModel:       getEnv("LLM_MODEL", "gemma3:12b"),
		},
		Rag: RagConfig{
			ServedModelID:    getEnv("SERVED_MODEL_ID", "dge-policy-rag"),
			ContextLength:    getEnvAsInt("SERVED_CONTEXT_LENGTH", 131072),
			MinScore:         getEnvAsFloat("RAG_MIN_SCORE", 0.5),
			DenseTopK:        getEnvAsInt("RAG_DENSE_TOP_K", 2),
			SparseTopK:       getEnvAsInt("RAG_SPARSE_TOP_K", 1),
			HybridAlpha:      getEnvAsFloat("RAG_HYBRID_ALPHA", 0.7),
			HistoryWindow:    getEnvAsInt("RAG_HISTORY_WINDOW", 3),
			Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.1),
			ClassifyTimeout:  getEnvAsDuration("GUARDRAIL_TIMEOUT", 30*time.Second),
			RetrieveTimeout:  getEnvAsDuration("RETRIEVAL_TIMEOUT", 30*time.Second),
			SynthesisTimeout: getEnvAsDuration("SYNTHESIS_TIMEOUT", 300*time.Second),
			DocumentsDir:     getEnv("MD_DIR", "data/md"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
