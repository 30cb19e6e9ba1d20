package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gossipbot/types"
)

// Client is a thin HTTP client for the gossipbot API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an API client. Processing a run can take minutes when
// many feeds are configured, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Process triggers a full collect-and-ingest run and returns its statistics.
func (c *Client) Process() (*types.IngestStats, error) {
	resp, err := c.client.Post(c.baseURL+"/api/articles/process", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("failed to trigger processing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Status string            `json:"status"`
		Stats  types.IngestStats `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result.Stats, nil
}

// Recent lists the most recent distinct articles known to the server.
func (c *Client) Recent(limit int) ([]types.ArticleSummary, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/api/articles?limit=%d", c.baseURL, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Status   string                 `json:"status"`
		Articles []types.ArticleSummary `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Articles, nil
}

// Query asks a question and returns the grounded answer.
func (c *Client) Query(query string) (string, error) {
	payload, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.baseURL+"/api/query", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to send query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Answer, nil
}
