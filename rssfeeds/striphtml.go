package rssfeeds

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes all markup from an HTML fragment, keeping only the text
// content. Every element boundary becomes a single separating space and the
// result is whitespace-normalized, so "<p>a</p><p>b</p>" yields "a b".
func StripTags(fragment string) string {
	if fragment == "" {
		return ""
	}

	var parts []string
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// Includes io.EOF; anything salvaged so far is kept.
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.TextToken:
			parts = append(parts, tokenizer.Token().Data)
		}
	}
}
