package rag

import (
	"context"
	"fmt"

	"gossipbot/types"
	"gossipbot/vectorstore"
)

// Retriever maps nearest-neighbor results to ranked contexts. Store failures
// propagate; a failed lookup has no meaningful partial result.
type Retriever struct {
	store vectorstore.Store
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store vectorstore.Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve runs a nearest-neighbor query and shapes the results into
// contexts, preserving the store's ranking order. Missing payload fields
// default to empty strings.
func (r *Retriever) Retrieve(ctx context.Context, vector []float32, limit int) ([]types.RetrievedContext, error) {
	points, err := r.store.Query(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("searching similar chunks: %w", err)
	}

	contexts := make([]types.RetrievedContext, 0, len(points))
	for _, p := range points {
		contexts = append(contexts, types.RetrievedContext{
			Text:         payloadString(p.Payload, "chunk_text"),
			ArticleTitle: payloadString(p.Payload, "article_title"),
			ArticleURL:   payloadString(p.Payload, "article_url"),
			Source:       payloadString(p.Payload, "source"),
			Score:        p.Score,
		})
	}
	return contexts, nil
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadStrings(payload map[string]any, key string) []string {
	out := []string{}
	if payload == nil {
		return out
	}
	values, ok := payload[key].([]any)
	if !ok {
		return out
	}
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
