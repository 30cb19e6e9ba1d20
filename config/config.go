package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Chunking and retrieval defaults
const (
	// DefaultChunkSize is the sliding-window width in characters
	DefaultChunkSize = 1500

	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks
	DefaultChunkOverlap = 200

	// DefaultTopK is the number of contexts retrieved per query
	DefaultTopK = 8

	// DefaultRecentLimit caps the recent-articles listing
	DefaultRecentLimit = 100
)

// Vector store defaults
const (
	// DefaultCollection is the Qdrant collection holding article chunks
	DefaultCollection = "gossip_articles"

	// DefaultEmbeddingDim matches text-embedding-3-small
	DefaultEmbeddingDim = 1536
)

// Config holds process configuration resolved from the environment.
type Config struct {
	Addr string

	QdrantURL    string
	QdrantAPIKey string
	Collection   string
	EmbeddingDim int

	ChunkSize    int
	ChunkOverlap int

	EmbeddingModel  string
	GenerationModel string

	FeedsFile          string
	FetchTimeout       time.Duration
	ExtractFullContent bool

	// Optional integrations; each stays disabled when its key setting is empty.
	KafkaBrokers []string
	KafkaTopic   string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AnswerTTL     time.Duration
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	cfg := &Config{
		Addr:               ":" + getEnvOrDefault("PORT", "8080"),
		QdrantURL:          getEnvOrDefault("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       os.Getenv("QDRANT_API_KEY"),
		Collection:         getEnvOrDefault("QDRANT_COLLECTION", DefaultCollection),
		EmbeddingDim:       getEnvInt("EMBEDDING_DIM", DefaultEmbeddingDim),
		ChunkSize:          getEnvInt("CHUNK_SIZE", DefaultChunkSize),
		ChunkOverlap:       getEnvInt("CHUNK_OVERLAP", DefaultChunkOverlap),
		EmbeddingModel:     os.Getenv("EMBEDDING_MODEL"),
		GenerationModel:    os.Getenv("GENERATION_MODEL"),
		FeedsFile:          os.Getenv("FEEDS_FILE"),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		ExtractFullContent: getEnvBool("EXTRACT_FULL_CONTENT", false),
		KafkaTopic:         getEnvOrDefault("KAFKA_TOPIC", "gossipbot.articles"),
		S3Bucket:           strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:           strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:          strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle:     getEnvBool("S3_USE_PATH_STYLE", false),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		AnswerTTL:          getEnvDuration("ANSWER_CACHE_TTL", 15*time.Minute),
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.EqualFold(val, "true") || val == "1"
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
