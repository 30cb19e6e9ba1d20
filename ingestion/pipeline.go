package ingestion

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gossipbot/embeddings"
	"gossipbot/types"
	"gossipbot/vectorstore"

	"github.com/google/uuid"
)

// EventSink receives notifications about stored articles and completed runs.
type EventSink interface {
	PublishArticleStored(article types.Article, chunks int) error
	PublishRunCompleted(stats types.IngestStats) error
}

// Result is the outcome of ingesting one article.
type Result struct {
	Article types.Article
	Chunks  int
	Err     error
}

// Pipeline chunks articles, embeds each chunk and upserts the resulting
// points into the vector store.
type Pipeline struct {
	embedder     embeddings.Provider
	store        vectorstore.Store
	chunkSize    int
	chunkOverlap int
	events       EventSink
}

// NewPipeline creates an ingestion pipeline. events may be nil.
func NewPipeline(embedder embeddings.Provider, store vectorstore.Store, chunkSize, chunkOverlap int, events EventSink) *Pipeline {
	return &Pipeline{
		embedder:     embedder,
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		events:       events,
	}
}

// Ingest chunks one article, embeds the chunks and stores them as a single
// batch. It returns the number of chunks stored. An article with neither
// content nor description is skipped with count 0; that is not an error.
// A chunk whose embedding fails is skipped without aborting its siblings.
// A storage failure after chunks were produced is returned to the caller.
func (p *Pipeline) Ingest(ctx context.Context, article types.Article) (int, error) {
	text := article.Content
	if strings.TrimSpace(text) == "" {
		text = article.Description
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("Skipping article with no content or description: %s", article.URL)
		return 0, nil
	}

	chunks, err := SplitText(text, p.chunkSize, p.chunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("chunking %s: %w", article.URL, err)
	}

	points := make([]vectorstore.Point, 0, len(chunks))
	for _, chunk := range chunks {
		vectors, err := p.embedder.EmbedTexts(ctx, []string{chunk.Text})
		if err != nil {
			log.Printf("Error embedding chunk %d of %s: %v", chunk.Index, article.URL, err)
			continue
		}
		if len(vectors) == 0 {
			log.Printf("Embedder returned no vector for chunk %d of %s", chunk.Index, article.URL)
			continue
		}

		payload := map[string]any{
			"article_title": article.Title,
			"article_url":   article.URL,
			"source":        article.Source,
			"chunk_index":   chunk.Index,
			"chunk_text":    chunk.Text,
			"categories":    article.Categories,
			"image_url":     article.ImageURL,
		}
		if article.PublicationDate != nil {
			payload["publication_date"] = article.PublicationDate.Format(time.RFC3339)
		}

		points = append(points, vectorstore.Point{
			ID:      uuid.NewString(),
			Vector:  vectors[0],
			Payload: payload,
		})
	}

	if len(points) == 0 {
		return 0, nil
	}

	if err := p.store.Upsert(ctx, points); err != nil {
		log.Printf("Error storing chunks for %s: %v", article.URL, err)
		return 0, fmt.Errorf("storing chunks for %s: %w", article.URL, err)
	}

	log.Printf("Stored %d chunks for %s", len(points), article.URL)
	return len(points), nil
}

// IngestAll runs Ingest over every article, isolating per-article failures,
// and returns run statistics. It never fails as a whole.
func (p *Pipeline) IngestAll(ctx context.Context, articles []types.Article) types.IngestStats {
	results := make([]Result, 0, len(articles))
	for _, article := range articles {
		chunks, err := p.Ingest(ctx, article)
		if err != nil {
			log.Printf("Error processing article %s: %v", article.URL, err)
		}
		results = append(results, Result{Article: article, Chunks: chunks, Err: err})
	}

	stats := types.IngestStats{TotalArticles: len(articles)}
	for _, r := range results {
		if r.Err != nil || r.Chunks == 0 {
			stats.ArticlesFailed++
			continue
		}
		stats.ArticlesProcessed++
		stats.TotalChunks += r.Chunks
		if p.events != nil {
			if err := p.events.PublishArticleStored(r.Article, r.Chunks); err != nil {
				log.Printf("Warning: failed to publish event for %s: %v", r.Article.URL, err)
			}
		}
	}

	if p.events != nil {
		if err := p.events.PublishRunCompleted(stats); err != nil {
			log.Printf("Warning: failed to publish run summary: %v", err)
		}
	}

	log.Printf("Finished processing articles: processed=%d failed=%d chunks=%d total=%d",
		stats.ArticlesProcessed, stats.ArticlesFailed, stats.TotalChunks, stats.TotalArticles)
	return stats
}
