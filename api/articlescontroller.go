package api

import (
	"net/http"
	"strconv"

	"gossipbot/config"
	"gossipbot/rssfeeds"
	"gossipbot/types"

	"github.com/gin-gonic/gin"
)

// ProcessResponse reports one ingestion run.
type ProcessResponse struct {
	Status string            `json:"status"`
	Stats  types.IngestStats `json:"stats"`
}

// ArticlesResponse lists recent distinct articles.
type ArticlesResponse struct {
	Status   string                 `json:"status"`
	Articles []types.ArticleSummary `json:"articles"`
}

// RegisterArticleRoutes registers the ingestion and listing endpoints.
func RegisterArticleRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/api/articles/process", func(c *gin.Context) { handleProcessArticles(c, h) })
	r.GET("/api/articles", func(c *gin.Context) { handleRecentArticles(c, h) })
}

// handleProcessArticles runs a full collect-and-ingest cycle. Failures along
// the way degrade to statistics; the endpoint itself only fails on a broken
// request.
func handleProcessArticles(c *gin.Context, h *Handlers) {
	ctx := c.Request.Context()

	articles := h.Collector.Collect(ctx)
	if h.ExtractContent {
		rssfeeds.ExtractMissingContent(articles)
	}
	if h.Archiver != nil {
		h.Archiver.ArchiveArticles(ctx, articles)
	}

	stats := h.Pipeline.IngestAll(ctx, articles)
	c.JSON(http.StatusOK, ProcessResponse{Status: "success", Stats: stats})
}

func handleRecentArticles(c *gin.Context, h *Handlers) {
	limit := config.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	articles := h.Recent.Recent(c.Request.Context(), limit)
	c.JSON(http.StatusOK, ArticlesResponse{Status: "success", Articles: articles})
}
