package api

import (
	"net/http"

	"gossipbot/config"

	"github.com/gin-gonic/gin"
)

// QueryRequest is a free-text question with an optional context budget.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

// QueryResponse carries the generated answer.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// RegisterQueryRoutes registers the question answering endpoint.
func RegisterQueryRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/api/query", func(c *gin.Context) { handleQuery(c, h) })
}

func handleQuery(c *gin.Context, h *Handlers) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if req.TopK <= 0 {
		req.TopK = config.DefaultTopK
	}

	answer, err := h.Answerer.Answer(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, QueryResponse{Answer: answer})
}
