package rag

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gossipbot/embeddings"
	"gossipbot/generation"
	"gossipbot/types"

	"github.com/redis/go-redis/v9"
)

// Fixed user-facing messages. Neither is an error path.
const (
	NoContextMessage        = "I couldn't find any relevant articles to answer your question."
	GenerationFailedMessage = "I encountered an error while generating the answer."
)

const systemPrompt = "You are a friendly gossip assistant with a cheeky sense of humor. " +
	"Answer questions based on provided article in a warm, " +
	"conversational tone. You can be playful and a bit cheeky, but always " +
	"remain respectful about the people mentioned. Bring in some light gossip " +
	"humor while staying accurate to the information in the articles. " +
	"Always mention the source of information (the article source) " +
	"If the articles don't contain enough information, say so in a friendly way."

// Answerer embeds a question, retrieves grounding contexts and asks the
// generator for an answer. A Redis client may be supplied to cache answers;
// cache errors count as misses.
type Answerer struct {
	embedder  embeddings.Provider
	retriever *Retriever
	generator generation.Generator
	cache     *redis.Client
	cacheTTL  time.Duration
}

// NewAnswerer creates an answerer. cache may be nil to disable caching.
func NewAnswerer(embedder embeddings.Provider, retriever *Retriever, generator generation.Generator, cache *redis.Client, cacheTTL time.Duration) *Answerer {
	return &Answerer{
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Answer produces a grounded answer for the query from the topK most
// relevant stored chunks. With no retrieved context it returns the fixed
// no-context message without calling the generator; a generation failure
// degrades to a fixed message, never an error. Embedding and retrieval
// failures propagate to the caller.
func (a *Answerer) Answer(ctx context.Context, query string, topK int) (string, error) {
	if topK <= 0 {
		topK = 8
	}

	cacheKey := "answer:" + types.GenerateID(fmt.Sprintf("%s|%d", query, topK))
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey).Result(); err == nil {
			log.Printf("Answer cache hit for query %q", query)
			return cached, nil
		} else if err != redis.Nil {
			log.Printf("Warning: answer cache read failed: %v", err)
		}
	}

	log.Printf("Embedding query: %q", query)
	vectors, err := a.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embedder returned no vector for query")
	}

	contexts, err := a.retriever.Retrieve(ctx, vectors[0], topK)
	if err != nil {
		return "", err
	}

	if len(contexts) == 0 {
		log.Printf("No similar chunks found for query %q", query)
		return NoContextMessage, nil
	}

	userPrompt := fmt.Sprintf("Question: %s\n\nRelevant articles:\n%s\n\nAnswer:", query, buildContextBlock(contexts))

	answer, err := a.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("Error generating answer: %v", err)
		return GenerationFailedMessage, nil
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey, answer, a.cacheTTL).Err(); err != nil {
			log.Printf("Warning: answer cache write failed: %v", err)
		}
	}
	return answer, nil
}

// buildContextBlock enumerates the contexts in retrieval order, 1-indexed,
// so source attribution in the answer traces back to the highest-scoring
// evidence first.
func buildContextBlock(contexts []types.RetrievedContext) string {
	parts := make([]string, 0, len(contexts))
	for i, c := range contexts {
		parts = append(parts, fmt.Sprintf("[Article %d] %s\nSource: %s\nContent: %s\n",
			i+1, c.ArticleTitle, c.Source, c.Text))
	}
	return strings.Join(parts, "\n")
}
