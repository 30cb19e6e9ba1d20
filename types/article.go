package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is a normalized feed entry. Title, URL and Source are always
// populated (empty string at worst); URL is the identity key used for
// display-time deduplication, but duplicate URLs across overlapping feeds
// are expected at ingestion time.
type Article struct {
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Source          string     `json:"source"`
	Content         string     `json:"content"`
	Description     string     `json:"description"`
	Categories      []string   `json:"categories"`
	ImageURL        string     `json:"image_url,omitempty"`
}

// ArticleSummary is one row of the recent-articles view, reconstructed from
// stored chunk payloads.
type ArticleSummary struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	Source          string   `json:"source"`
	Description     string   `json:"description"`
	Categories      []string `json:"categories"`
	ImageURL        string   `json:"image_url"`
	PublicationDate string   `json:"publication_date,omitempty"`
}

// RetrievedContext is a query-scoped ranked chunk used to ground an answer.
// Score is the store's cosine similarity, higher is more relevant.
type RetrievedContext struct {
	Text         string  `json:"text"`
	ArticleTitle string  `json:"article_title"`
	ArticleURL   string  `json:"article_url"`
	Source       string  `json:"source"`
	Score        float32 `json:"score"`
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	ArticlesProcessed int `json:"articles_processed"`
	ArticlesFailed    int `json:"articles_failed"`
	TotalChunks       int `json:"total_chunks"`
	TotalArticles     int `json:"total_articles"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
