// Package config loads application configuration from environment
// variables, with an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	NotesPath       string // root scanned at indexing time
	AnswerNotesPath string // root used to reopen sources at answer time

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	EmbeddingBaseURL string
	EmbeddingModel   string
	LLMBaseURL       string
	LLMModel         string
	LLMAPIKey        string

	APIKey  string // shared secret for non-health routes
	APIPort string
	DBPath  string

	LogLevel  slog.Level
	LogFormat string // "text" or "json"

	ChunkMaxSize       int
	ChunkWindowSize    int
	ChunkWindowOverlap int
}

// Load reads configuration from environment variables, applying defaults
// for optional fields and validating required ones. A .env file in the
// current directory is loaded first; real environment variables take
// precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		NotesPath:        getEnv("NOTES_PATH", "./notes"),
		AnswerNotesPath:  os.Getenv("ANSWER_NOTES_PATH"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "notes"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "bge-m3"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModel:         getEnv("LLM_MODEL", "llama3.2"),
		LLMAPIKey:        getEnv("LLM_API_KEY", "dummy-key"),
		APIKey:           os.Getenv("API_KEY"),
		APIPort:          getEnv("API_PORT", "8000"),
		DBPath:           getEnv("DB_PATH", "./data/notes-rag.db"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.AnswerNotesPath == "" {
		cfg.AnswerNotesPath = cfg.NotesPath
	}

	vectorSize, err := getEnvInt("QDRANT_VECTOR_SIZE", 0)
	if err != nil {
		return nil, err
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required and must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.ChunkMaxSize, err = getEnvInt("CHUNK_MAX_SIZE", 1500); err != nil {
		return nil, err
	}
	if cfg.ChunkWindowSize, err = getEnvInt("CHUNK_WINDOW_SIZE", 500); err != nil {
		return nil, err
	}
	if cfg.ChunkWindowOverlap, err = getEnvInt("CHUNK_WINDOW_OVERLAP", 50); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxSize <= 0 || cfg.ChunkWindowSize <= 0 {
		return nil, fmt.Errorf("chunk sizes must be greater than 0")
	}
	if cfg.ChunkWindowOverlap < 0 || cfg.ChunkWindowOverlap >= cfg.ChunkWindowSize {
		return nil, fmt.Errorf("CHUNK_WINDOW_OVERLAP must be in [0, CHUNK_WINDOW_SIZE)")
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable, returning the default
// when unset.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
