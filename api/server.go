package api

import (
	"net/http"

	"gossipbot/ingestion"
	"gossipbot/rag"
	"gossipbot/rssfeeds"
	"gossipbot/storage"

	"github.com/gin-gonic/gin"
)

// Handlers carries the constructed core components the controllers dispatch
// to. Archiver is nil when S3 archival is not configured.
type Handlers struct {
	Collector      *rssfeeds.Collector
	Pipeline       *ingestion.Pipeline
	Answerer       *rag.Answerer
	Recent         *rag.RecentArticles
	Archiver       *storage.Archiver
	ExtractContent bool
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery(), corsMiddleware())

	RegisterHealthRoutes(r)
	RegisterArticleRoutes(r, h)
	RegisterQueryRoutes(r, h)
	return r
}

// corsMiddleware allows any origin; the frontend is served separately.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
