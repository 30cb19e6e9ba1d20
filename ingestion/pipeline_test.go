package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gossipbot/types"
	"gossipbot/vectorstore"
)

type fakeEmbedder struct {
	calls    int
	failText string
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.failText != "" && len(texts) > 0 && strings.Contains(texts[0], f.failText) {
		return nil, errors.New("embedding backend unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }
func (f *fakeEmbedder) Dimension() int    { return 3 }

type fakeStore struct {
	upserts   [][]vectorstore.Point
	upsertErr error
}

func (f *fakeStore) EnsureCollection(context.Context, int) error { return nil }

func (f *fakeStore) Upsert(_ context.Context, points []vectorstore.Point) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, points)
	return nil
}

func (f *fakeStore) Query(context.Context, []float32, int) ([]vectorstore.ScoredPoint, error) {
	return nil, nil
}

func (f *fakeStore) Scroll(context.Context, int) ([]vectorstore.Record, error) {
	return nil, nil
}

type recordedEvent struct {
	url    string
	chunks int
}

type fakeSink struct {
	stored []recordedEvent
	runs   []types.IngestStats
}

func (f *fakeSink) PublishArticleStored(article types.Article, chunks int) error {
	f.stored = append(f.stored, recordedEvent{url: article.URL, chunks: chunks})
	return nil
}

func (f *fakeSink) PublishRunCompleted(stats types.IngestStats) error {
	f.runs = append(f.runs, stats)
	return nil
}

func testArticle(url, content string) types.Article {
	return types.Article{
		Title:   "Some headline",
		URL:     url,
		Source:  "public.fr",
		Content: content,
	}
}

func TestIngestEmptyArticleSkipped(t *testing.T) {
	embedder := &fakeEmbedder{}
	store := &fakeStore{}
	p := NewPipeline(embedder, store, 1500, 200, nil)

	count, err := p.Ingest(context.Background(), testArticle("https://example.com/a", ""))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 chunks, got %d", count)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder should not be called, got %d calls", embedder.calls)
	}
	if len(store.upserts) != 0 {
		t.Errorf("store should not be called, got %d upserts", len(store.upserts))
	}
}

func TestIngestFallsBackToDescription(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, nil)

	article := testArticle("https://example.com/a", "")
	article.Description = "A short teaser about someone famous."

	count, err := p.Ingest(context.Background(), article)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 chunk, got %d", count)
	}
	if len(store.upserts) != 1 || len(store.upserts[0]) != 1 {
		t.Fatalf("expected one upsert with one point, got %+v", store.upserts)
	}
	if got := store.upserts[0][0].Payload["chunk_text"]; got != article.Description {
		t.Errorf("chunk_text = %q", got)
	}
}

func TestIngestPayloadFields(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, nil)

	published := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	article := types.Article{
		Title:           "Star couple spotted",
		URL:             "https://example.com/star",
		Source:          "vsd.fr",
		Content:         "They were seen together at the premiere.",
		Categories:      []string{"people", "cinema"},
		ImageURL:        "https://example.com/img.jpg",
		PublicationDate: &published,
	}

	if _, err := p.Ingest(context.Background(), article); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	payload := store.upserts[0][0].Payload
	if payload["article_title"] != article.Title {
		t.Errorf("article_title = %v", payload["article_title"])
	}
	if payload["article_url"] != article.URL {
		t.Errorf("article_url = %v", payload["article_url"])
	}
	if payload["source"] != article.Source {
		t.Errorf("source = %v", payload["source"])
	}
	if payload["chunk_index"] != 0 {
		t.Errorf("chunk_index = %v", payload["chunk_index"])
	}
	if payload["image_url"] != article.ImageURL {
		t.Errorf("image_url = %v", payload["image_url"])
	}
	if payload["publication_date"] != "2026-03-14T09:30:00Z" {
		t.Errorf("publication_date = %v", payload["publication_date"])
	}
	if store.upserts[0][0].ID == "" {
		t.Error("point ID must be set")
	}
}

func TestIngestNoPublicationDateOmitsField(t *testing.T) {
	store := &fakeStore{}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, nil)

	if _, err := p.Ingest(context.Background(), testArticle("https://example.com/a", "Content here.")); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if _, ok := store.upserts[0][0].Payload["publication_date"]; ok {
		t.Error("publication_date must be absent when unknown")
	}
}

func TestIngestEmbeddingFailureSkipsChunk(t *testing.T) {
	// Two windows; the one containing the marker fails and only the other
	// is stored.
	embedder := &fakeEmbedder{failText: "zzz"}
	store := &fakeStore{}
	p := NewPipeline(embedder, store, 20, 0, nil)

	article := testArticle("https://example.com/a", strings.Repeat("a", 20)+strings.Repeat("z", 20))
	count, err := p.Ingest(context.Background(), article)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 stored chunk, got %d", count)
	}
	if len(store.upserts) != 1 || len(store.upserts[0]) != 1 {
		t.Fatalf("unexpected upserts: %+v", store.upserts)
	}
	if got := store.upserts[0][0].Payload["chunk_index"]; got != 0 {
		t.Errorf("surviving chunk index = %v", got)
	}
}

func TestIngestStoreFailure(t *testing.T) {
	store := &fakeStore{upsertErr: errors.New("qdrant down")}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, nil)

	count, err := p.Ingest(context.Background(), testArticle("https://example.com/a", "Content here."))
	if err == nil {
		t.Fatal("expected error from store failure")
	}
	if count != 0 {
		t.Errorf("expected 0 chunks on store failure, got %d", count)
	}
}

func TestIngestAllStats(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, sink)

	articles := []types.Article{
		testArticle("https://example.com/a", "First article body."),
		testArticle("https://example.com/b", ""),
		testArticle("https://example.com/c", "Third article body."),
	}

	stats := p.IngestAll(context.Background(), articles)
	if stats.TotalArticles != 3 {
		t.Errorf("TotalArticles = %d", stats.TotalArticles)
	}
	if stats.ArticlesProcessed != 2 {
		t.Errorf("ArticlesProcessed = %d", stats.ArticlesProcessed)
	}
	if stats.ArticlesFailed != 1 {
		t.Errorf("ArticlesFailed = %d", stats.ArticlesFailed)
	}
	if stats.TotalChunks != 2 {
		t.Errorf("TotalChunks = %d", stats.TotalChunks)
	}

	if len(sink.stored) != 2 {
		t.Errorf("expected 2 article events, got %d", len(sink.stored))
	}
	if len(sink.runs) != 1 {
		t.Fatalf("expected 1 run event, got %d", len(sink.runs))
	}
	if sink.runs[0] != stats {
		t.Errorf("run event stats = %+v, want %+v", sink.runs[0], stats)
	}
}

func TestIngestAllZeroChunksCountsAsFailed(t *testing.T) {
	// A store outage makes every article yield zero chunks.
	store := &fakeStore{upsertErr: errors.New("qdrant down")}
	p := NewPipeline(&fakeEmbedder{}, store, 1500, 200, nil)

	stats := p.IngestAll(context.Background(), []types.Article{
		testArticle("https://example.com/a", "Body."),
	})
	if stats.ArticlesFailed != 1 || stats.ArticlesProcessed != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
