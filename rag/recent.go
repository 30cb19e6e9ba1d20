package rag

import (
	"context"
	"log"

	"gossipbot/types"
	"gossipbot/vectorstore"
)

// recentOverfetchFactor compensates for articles spanning multiple chunks
// when scanning for distinct articles. It is a heuristic: an article split
// into more than recentOverfetchFactor chunks on average can crowd others
// out of the scan window, so the view may under-fetch. Tune rather than
// remove.
const recentOverfetchFactor = 5

// descriptionLength is how much of a chunk's text the listing shows.
const descriptionLength = 200

// RecentArticles reconstructs a deduplicated article listing from stored
// chunk payloads.
type RecentArticles struct {
	store vectorstore.Store
}

// NewRecentArticles creates the view over the given store.
func NewRecentArticles(store vectorstore.Store) *RecentArticles {
	return &RecentArticles{store: store}
}

// Recent scans stored chunks and returns up to limit distinct articles in
// store-native scan order, one summary per article URL. A store failure is
// logged and surfaced as an empty listing.
func (v *RecentArticles) Recent(ctx context.Context, limit int) []types.ArticleSummary {
	records, err := v.store.Scroll(ctx, limit*recentOverfetchFactor)
	if err != nil {
		log.Printf("Error fetching recent articles: %v", err)
		return []types.ArticleSummary{}
	}

	seen := make(map[string]struct{})
	articles := make([]types.ArticleSummary, 0, limit)

	for _, record := range records {
		if record.Payload == nil {
			continue
		}
		url := payloadString(record.Payload, "article_url")
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}

		articles = append(articles, types.ArticleSummary{
			Title:           payloadString(record.Payload, "article_title"),
			URL:             url,
			Source:          payloadString(record.Payload, "source"),
			Description:     truncate(payloadString(record.Payload, "chunk_text"), descriptionLength) + "...",
			Categories:      payloadStrings(record.Payload, "categories"),
			ImageURL:        payloadString(record.Payload, "image_url"),
			PublicationDate: payloadString(record.Payload, "publication_date"),
		})

		if len(articles) >= limit {
			break
		}
	}

	log.Printf("Fetched %d recent articles", len(articles))
	return articles
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
