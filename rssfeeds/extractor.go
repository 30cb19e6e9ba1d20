package rssfeeds

import (
	"log"
	"sync"
	"time"

	"gossipbot/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractWorkerCount = 5
	extractorTimeout   = 30 * time.Second
)

// ExtractMissingContent fetches the article page and fills in Content for
// articles whose feed entry carried no usable body, using a worker pool.
// Extraction failures are logged per article and leave it untouched; the
// ingestion pipeline then falls back to the description as usual.
func ExtractMissingContent(articles []types.Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(articles))

	for i := 0; i < extractWorkerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := extractContent(article); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, article.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for i := range articles {
		if articles[i].URL == "" || articles[i].Content != "" {
			continue
		}
		wg.Add(1)
		articleChan <- &articles[i]
	}

	wg.Wait()
	close(articleChan)
}

// extractContent fetches one article page and extracts its readable text.
func extractContent(article *types.Article) error {
	extracted, err := readability.FromURL(article.URL, extractorTimeout)
	if err != nil {
		return err
	}

	article.Content = StripTags(extracted.TextContent)

	if article.ImageURL == "" {
		article.ImageURL = extracted.Image
	}

	log.Printf("Extracted full content: %s", article.Title)
	return nil
}
