package rssfeeds

import (
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
     xmlns:content="http://purl.org/rss/1.0/modules/content/"
     xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Celebrity News</title>
    <link>https://example.com</link>
    <item>
      <title>Star couple spotted at premiere</title>
      <link>https://example.com/star-couple</link>
      <description>They arrived together.</description>
      <content:encoded><![CDATA[<p>They arrived <b>together</b> at the premiere.</p>]]></content:encoded>
      <category>people</category>
      <category>cinema</category>
      <pubDate>Sat, 14 Mar 2026 09:30:00 GMT</pubDate>
      <media:thumbnail url="https://example.com/thumb.jpg" width="150" height="100"/>
    </item>
    <item>
      <title>Minimal item</title>
      <link>https://example.com/minimal</link>
    </item>
  </channel>
</rss>`

func TestParseFeed(t *testing.T) {
	articles, err := ParseFeed([]byte(sampleFeed), "public.fr")
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "Star couple spotted at premiere" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.URL != "https://example.com/star-couple" {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Source != "public.fr" {
		t.Errorf("Source = %q", a.Source)
	}
	if a.Description != "They arrived together." {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Content != "They arrived together at the premiere." {
		t.Errorf("Content = %q", a.Content)
	}
	if len(a.Categories) != 2 || a.Categories[0] != "people" || a.Categories[1] != "cinema" {
		t.Errorf("Categories = %v", a.Categories)
	}
	if a.ImageURL != "https://example.com/thumb.jpg" {
		t.Errorf("ImageURL = %q", a.ImageURL)
	}
	if a.PublicationDate == nil {
		t.Fatal("PublicationDate is nil")
	}
	want := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if !a.PublicationDate.Equal(want) {
		t.Errorf("PublicationDate = %v, want %v", a.PublicationDate, want)
	}
}

func TestParseFeedMinimalItem(t *testing.T) {
	articles, err := ParseFeed([]byte(sampleFeed), "public.fr")
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}

	a := articles[1]
	if a.Title != "Minimal item" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Description != "" || a.Content != "" || a.ImageURL != "" {
		t.Errorf("expected empty optional fields, got %+v", a)
	}
	if a.PublicationDate != nil {
		t.Errorf("PublicationDate = %v, want nil", a.PublicationDate)
	}
	if a.Categories == nil || len(a.Categories) != 0 {
		t.Errorf("Categories = %v, want empty non-nil slice", a.Categories)
	}
}

func TestParseFeedGUIDFallback(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>No link</title>
      <guid isPermaLink="true">https://example.com/from-guid</guid>
    </item>
  </channel>
</rss>`

	articles, err := ParseFeed([]byte(feed), "vsd.fr")
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].URL != "https://example.com/from-guid" {
		t.Errorf("URL = %q", articles[0].URL)
	}
}

func TestParseFeedMalformed(t *testing.T) {
	articles, err := ParseFeed([]byte("this is not xml at all"), "public.fr")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}

func TestParseFeedUnparsableDate(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>Bad date</title>
      <link>https://example.com/bad-date</link>
      <pubDate>sometime last tuesday</pubDate>
    </item>
  </channel>
</rss>`

	articles, err := ParseFeed([]byte(feed), "public.fr")
	if err != nil {
		t.Fatalf("ParseFeed failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].PublicationDate != nil {
		t.Errorf("PublicationDate = %v, want nil", articles[0].PublicationDate)
	}
}
