package rssfeeds

import (
	"bytes"
	"fmt"
	"strings"

	"gossipbot/types"

	"github.com/mmcdole/gofeed/rss"
)

// ParseFeed parses raw RSS markup into normalized articles, labeling each
// with the given source. A document-level parse failure returns an empty
// slice together with the error; callers log it and move on. Missing fields
// on an item never fail the item, they default to empty values.
func ParseFeed(raw []byte, source string) ([]types.Article, error) {
	parser := &rss.Parser{}
	feed, err := parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	articles := make([]types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		article := types.Article{
			Title:       item.Title,
			URL:         resolveItemURL(item),
			Source:      source,
			Description: item.Description,
			Categories:  []string{},
		}

		if item.Content != "" {
			article.Content = StripTags(item.Content)
		}

		for _, cat := range item.Categories {
			if cat == nil {
				continue
			}
			if text := strings.TrimSpace(cat.Value); text != "" {
				article.Categories = append(article.Categories, text)
			}
		}

		article.ImageURL = firstThumbnailURL(item)

		// Unparsable dates stay absent rather than failing the item.
		if item.PubDateParsed != nil {
			published := *item.PubDateParsed
			article.PublicationDate = &published
		}

		articles = append(articles, article)
	}

	return articles, nil
}

// resolveItemURL prefers the item link, then the guid value, then the guid's
// isPermaLink attribute as a last resort.
func resolveItemURL(item *rss.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if item.GUID != nil {
		if item.GUID.Value != "" {
			return item.GUID.Value
		}
		return item.GUID.IsPermalink
	}
	return ""
}

// firstThumbnailURL returns the url attribute of the first media:thumbnail
// extension element, or "".
func firstThumbnailURL(item *rss.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	thumbnails, ok := media["thumbnail"]
	if !ok || len(thumbnails) == 0 {
		return ""
	}
	return thumbnails[0].Attrs["url"]
}
