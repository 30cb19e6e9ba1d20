package rssfeeds

import (
	"context"
	"log"
	"sync"

	"gossipbot/config"
	"gossipbot/types"
)

// FetchWorkerCount bounds concurrent feed fetches.
const FetchWorkerCount = 5

// Collector fetches every configured feed endpoint and aggregates the parsed
// articles. One endpoint failing to fetch or parse contributes zero articles
// and never aborts the rest.
type Collector struct {
	fetcher Fetcher
	sources []config.FeedSource
	workers int
}

// NewCollector creates a collector over the given feed sources.
func NewCollector(fetcher Fetcher, sources []config.FeedSource) *Collector {
	return &Collector{fetcher: fetcher, sources: sources, workers: FetchWorkerCount}
}

type fetchJob struct {
	slot   int
	source string
	url    string
}

// Collect fetches and parses all endpoints, returning the flattened article
// list in source order then endpoint order. Fetches run on a worker pool;
// results land in per-endpoint slots so ordering stays deterministic.
func (c *Collector) Collect(ctx context.Context) []types.Article {
	var jobs []fetchJob
	for _, src := range c.sources {
		log.Printf("Collecting articles from %s (%d feeds)", src.BaseURL, len(src.Endpoints))
		for _, url := range src.Endpoints {
			jobs = append(jobs, fetchJob{slot: len(jobs), source: src.BaseURL, url: url})
		}
	}

	slots := make([][]types.Article, len(jobs))

	var wg sync.WaitGroup
	jobChan := make(chan fetchJob, len(jobs))

	workers := c.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		go func() {
			for job := range jobChan {
				slots[job.slot] = c.collectEndpoint(ctx, job)
				wg.Done()
			}
		}()
	}

	for _, job := range jobs {
		wg.Add(1)
		jobChan <- job
	}
	wg.Wait()
	close(jobChan)

	var all []types.Article
	for _, articles := range slots {
		all = append(all, articles...)
	}
	log.Printf("Finished collecting articles: %d total", len(all))
	return all
}

func (c *Collector) collectEndpoint(ctx context.Context, job fetchJob) []types.Article {
	log.Printf("Fetching RSS feed: %s", job.url)

	raw, err := c.fetcher.Fetch(ctx, job.url)
	if err != nil {
		log.Printf("Error fetching feed %s: %v", job.url, err)
		return nil
	}

	articles, err := ParseFeed(raw, job.source)
	if err != nil {
		log.Printf("Error parsing feed %s: %v", job.url, err)
		return nil
	}

	log.Printf("Parsed %d articles from %s", len(articles), job.url)
	return articles
}
