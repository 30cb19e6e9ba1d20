package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Generator produces a completion from a fixed system instruction and one
// user turn.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ModelName() string
}

// NewDefaultGenerator returns an OpenAI chat generator when OPENAI_API_KEY
// is set, otherwise nil.
func NewDefaultGenerator(preferredModel string) Generator {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	model := preferredModel
	if model == "" {
		model = "gpt-5-mini"
	}
	return &OpenAIGenerator{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// OpenAIGenerator implements Generator using the OpenAI Chat Completions API
// Endpoint: POST https://api.openai.com/v1/chat/completions
type OpenAIGenerator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func (g *OpenAIGenerator) ModelName() string { return g.model }

func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint := g.endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	}

	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return "", fmt.Errorf("openai chat error: status %d: %v", resp.StatusCode, body)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("openai chat returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
