package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log"

	"gossipbot/common"
	"gossipbot/types"
)

// Archiver writes normalized article records to S3 as JSON, one object per
// article keyed by the hash of its URL. Re-runs skip articles already
// archived.
type Archiver struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewArchiver creates an archiver targeting bucket with an optional key
// prefix (must end with "/" when set).
func NewArchiver(s3 *common.S3, bucket, prefix string) *Archiver {
	return &Archiver{s3: s3, bucket: bucket, prefix: prefix}
}

// ArchiveArticles uploads each article, skipping ones without a URL and ones
// already present. Per-article upload failures are logged and never abort
// the rest. Returns the number of objects written.
func (a *Archiver) ArchiveArticles(ctx context.Context, articles []types.Article) int {
	uploaded := 0
	for _, article := range articles {
		if article.URL == "" {
			continue
		}
		key := a.prefix + "articles/" + types.GenerateID(article.URL) + ".json"

		exists, err := a.s3.Exists(ctx, a.bucket, key)
		if err != nil {
			log.Printf("Warning: S3 existence check failed for %s: %v", key, err)
		} else if exists {
			continue
		}

		body, err := json.MarshalIndent(article, "", "  ")
		if err != nil {
			log.Printf("Warning: failed to encode article %s: %v", article.URL, err)
			continue
		}
		if err := a.s3.Put(ctx, a.bucket, key, bytes.NewReader(body), "application/json"); err != nil {
			log.Printf("Warning: S3 upload failed for %s: %v", key, err)
			continue
		}
		uploaded++
	}
	log.Printf("Archived %d article(s) to s3://%s/%s", uploaded, a.bucket, a.prefix)
	return uploaded
}
