package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gossipbot/vectorstore"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }
func (f *fakeEmbedder) Dimension() int    { return 2 }

type fakeGenerator struct {
	answer      string
	err         error
	calls       int
	lastSystem  string
	lastUserMsg string
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUserMsg = userPrompt
	return f.answer, f.err
}

func (f *fakeGenerator) ModelName() string { return "fake-gen" }

func scoredPoint(title, source, text string, score float32) vectorstore.ScoredPoint {
	return vectorstore.ScoredPoint{
		Score: score,
		Payload: map[string]any{
			"article_title": title,
			"source":        source,
			"chunk_text":    text,
			"article_url":   "https://example.com/x",
		},
	}
}

func TestAnswer(t *testing.T) {
	store := &fakeStore{
		queryResults: []vectorstore.ScoredPoint{
			scoredPoint("Star couple spotted", "public.fr", "They were seen together.", 0.9),
			scoredPoint("Singer lays low", "vsd.fr", "A quieter week.", 0.7),
		},
	}
	generator := &fakeGenerator{answer: "Well, word on the red carpet is..."}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(store), generator, nil, 0)

	answer, err := a.Answer(context.Background(), "who was at the premiere?", 8)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer != "Well, word on the red carpet is..." {
		t.Errorf("answer = %q", answer)
	}
	if generator.calls != 1 {
		t.Errorf("generator calls = %d", generator.calls)
	}
	if !strings.Contains(generator.lastUserMsg, "Question: who was at the premiere?") {
		t.Errorf("user prompt missing question: %q", generator.lastUserMsg)
	}
}

func TestAnswerContextBlockOrder(t *testing.T) {
	store := &fakeStore{
		queryResults: []vectorstore.ScoredPoint{
			scoredPoint("First", "public.fr", "first text", 0.9),
			scoredPoint("Second", "vsd.fr", "second text", 0.5),
		},
	}
	generator := &fakeGenerator{answer: "ok"}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(store), generator, nil, 0)

	if _, err := a.Answer(context.Background(), "q", 2); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	first := "[Article 1] First\nSource: public.fr\nContent: first text\n"
	second := "[Article 2] Second\nSource: vsd.fr\nContent: second text\n"
	if !strings.Contains(generator.lastUserMsg, first+"\n"+second) {
		t.Errorf("context block malformed:\n%s", generator.lastUserMsg)
	}
}

func TestAnswerNoContexts(t *testing.T) {
	generator := &fakeGenerator{answer: "should not be used"}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(&fakeStore{}), generator, nil, 0)

	answer, err := a.Answer(context.Background(), "anything new?", 8)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer != NoContextMessage {
		t.Errorf("answer = %q, want fixed no-context message", answer)
	}
	if generator.calls != 0 {
		t.Errorf("generator must not be called without contexts, got %d calls", generator.calls)
	}
}

func TestAnswerGenerationFailureDegrades(t *testing.T) {
	store := &fakeStore{
		queryResults: []vectorstore.ScoredPoint{
			scoredPoint("Title", "public.fr", "text", 0.9),
		},
	}
	generator := &fakeGenerator{err: errors.New("model overloaded")}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(store), generator, nil, 0)

	answer, err := a.Answer(context.Background(), "q", 8)
	if err != nil {
		t.Fatalf("generation failure must not surface as error, got %v", err)
	}
	if answer != GenerationFailedMessage {
		t.Errorf("answer = %q, want fixed generation-failed message", answer)
	}
}

func TestAnswerEmbeddingFailurePropagates(t *testing.T) {
	a := NewAnswerer(&fakeEmbedder{err: errors.New("no key")}, NewRetriever(&fakeStore{}), &fakeGenerator{}, nil, 0)

	if _, err := a.Answer(context.Background(), "q", 8); err == nil {
		t.Fatal("expected embedding error to propagate")
	}
}

func TestAnswerRetrievalFailurePropagates(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("qdrant down")}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(store), &fakeGenerator{}, nil, 0)

	if _, err := a.Answer(context.Background(), "q", 8); err == nil {
		t.Fatal("expected retrieval error to propagate")
	}
}

func TestAnswerDefaultTopK(t *testing.T) {
	store := &fakeStore{}
	a := NewAnswerer(&fakeEmbedder{}, NewRetriever(store), &fakeGenerator{}, nil, 0)

	if _, err := a.Answer(context.Background(), "q", 0); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if store.queryLimit != 8 {
		t.Errorf("default topK = %d, want 8", store.queryLimit)
	}
}
