package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"gossipbot/api"
	"gossipbot/common"
	"gossipbot/config"
	"gossipbot/embeddings"
	"gossipbot/events"
	"gossipbot/generation"
	"gossipbot/ingestion"
	"gossipbot/rag"
	"gossipbot/rssfeeds"
	"gossipbot/storage"
	"gossipbot/vectorstore"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	sources, err := config.LoadFeedSources(cfg.FeedsFile)
	if err != nil {
		log.Fatalf("Failed to load feed sources: %v", err)
	}
	log.Printf("Loaded %d feed source(s)", len(sources))

	embedder := embeddings.NewDefaultProvider(cfg.EmbeddingModel, cfg.EmbeddingDim)
	if embedder == nil {
		log.Fatal("No embeddings provider configured: set COHERE_API_KEY or OPENAI_API_KEY")
	}
	log.Printf("Embeddings: %s (%d dimensions)", embedder.ModelName(), embedder.Dimension())

	generator := generation.NewDefaultGenerator(cfg.GenerationModel)
	if generator == nil {
		log.Fatal("No generation provider configured: set OPENAI_API_KEY")
	}
	log.Printf("Generation: %s", generator.ModelName())

	store := vectorstore.NewClient(vectorstore.Config{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureCollection(ctx, embedder.Dimension()); err != nil {
		cancel()
		log.Fatalf("Failed to ensure collection %q: %v", cfg.Collection, err)
	}
	cancel()
	log.Printf("Vector store ready: %s (collection %q)", cfg.QdrantURL, cfg.Collection)

	cache := initializeRedis(cfg)
	publisher := initializePublisher(cfg)
	if publisher != nil {
		defer publisher.Close()
	}
	archiver := initializeArchiver(cfg)

	collector := rssfeeds.NewCollector(rssfeeds.NewHTTPFetcher(cfg.FetchTimeout), sources)
	var sink ingestion.EventSink
	if publisher != nil {
		sink = publisher
	}
	pipeline := ingestion.NewPipeline(embedder, store, cfg.ChunkSize, cfg.ChunkOverlap, sink)
	retriever := rag.NewRetriever(store)
	answerer := rag.NewAnswerer(embedder, retriever, generator, cache, cfg.AnswerTTL)
	recent := rag.NewRecentArticles(store)

	r := api.NewRouter(&api.Handlers{
		Collector:      collector,
		Pipeline:       pipeline,
		Answerer:       answerer,
		Recent:         recent,
		Archiver:       archiver,
		ExtractContent: cfg.ExtractFullContent,
	})

	log.Printf("Starting API server on %s", cfg.Addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  POST /api/articles/process")
	log.Println("  GET  /api/articles")
	log.Println("  POST /api/query")

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeRedis returns an answer-cache client, or nil when REDIS_ADDR is
// unset or the server is unreachable.
func initializeRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unreachable at %s: %v (answer cache disabled)", cfg.RedisAddr, err)
		return nil
	}
	log.Printf("Answer cache enabled: redis at %s (TTL %s)", cfg.RedisAddr, cfg.AnswerTTL)
	return client
}

// initializePublisher returns a Kafka event publisher, or nil when
// KAFKA_BROKERS is unset or the brokers cannot be reached.
func initializePublisher(cfg *config.Config) *events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	publisher, err := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Printf("Warning: failed to init Kafka producer: %v (events disabled)", err)
		return nil
	}
	log.Printf("Ingest events enabled: topic %q on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	return publisher
}

// initializeArchiver returns an S3 article archiver, or nil when S3_BUCKET is
// unset or the client cannot be built.
func initializeArchiver(cfg *config.Config) *storage.Archiver {
	if cfg.S3Bucket == "" {
		return nil
	}
	s3c, err := common.NewS3(context.Background(), common.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archival disabled)", err)
		return nil
	}
	log.Printf("Article archival enabled: bucket %q prefix %q", cfg.S3Bucket, cfg.S3Prefix)
	return storage.NewArchiver(s3c, cfg.S3Bucket, cfg.S3Prefix)
}
