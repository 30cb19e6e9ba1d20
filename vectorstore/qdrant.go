package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Point is one stored vector with its chunk payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// ScoredPoint is a nearest-neighbor result. Score is cosine similarity,
// higher is more relevant.
type ScoredPoint struct {
	Score   float32
	Payload map[string]any
}

// Record is a scanned point without ranking.
type Record struct {
	ID      string
	Payload map[string]any
}

// Store is the vector database surface the pipeline and views consume.
// Tests substitute fakes for it.
type Store interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, points []Point) error
	Query(ctx context.Context, vector []float32, limit int) ([]ScoredPoint, error)
	Scroll(ctx context.Context, limit int) ([]Record, error)
}

// Client is a minimal REST client to Qdrant. The collection is created with
// cosine distance on first use.
type Client struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config configures the Qdrant client.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewClient creates a Qdrant REST client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the collection with the given dimensionality and
// cosine distance if it does not exist yet.
func (c *Client) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid embedding dimension")
	}

	status, err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant collection check failed with status %d", status)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	status, err = c.do(ctx, http.MethodPut, c.collectionURL(), body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant collection create failed with status %d", status)
	}
	return nil
}

// Upsert writes the points as one batch, waiting for the write to apply.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]any{"points": make([]map[string]any, 0, len(points))}
	for _, p := range points {
		body["points"] = append(body["points"].([]map[string]any), map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		})
	}
	status, err := c.do(ctx, http.MethodPut, c.collectionURL()+"/points?wait=true", body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant upsert failed with status %d", status)
	}
	return nil
}

// Query runs a nearest-neighbor search and returns scored points with their
// payloads, in the store's ranking order.
func (c *Client) Query(ctx context.Context, vector []float32, limit int) ([]ScoredPoint, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	status, err := c.do(ctx, http.MethodPost, c.collectionURL()+"/points/search", body, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant search failed with status %d", status)
	}

	results := make([]ScoredPoint, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, ScoredPoint{Score: r.Score, Payload: r.Payload})
	}
	return results, nil
}

// Scroll lists up to limit points with payloads, in store-native scan order.
func (c *Client) Scroll(ctx context.Context, limit int) ([]Record, error) {
	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
		"with_vector":  false,
	}
	var resp struct {
		Result struct {
			Points []struct {
				ID      any            `json:"id"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	status, err := c.do(ctx, http.MethodPost, c.collectionURL()+"/points/scroll", body, &resp)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant scroll failed with status %d", status)
	}

	records := make([]Record, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		records = append(records, Record{ID: fmt.Sprint(p.ID), Payload: p.Payload})
	}
	return records, nil
}

func (c *Client) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", c.url, c.collection)
}

// do sends one JSON request and decodes the response into out when non-nil.
// The HTTP status is returned alongside so callers can treat 404 specially.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding qdrant response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
