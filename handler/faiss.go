package handler

import (
	"time"

	"github.com/chatia-cau/ofertas/pkg/logger"
	"github.com/gin-gonic/gin"
)

// FaissHandler keeps the vector-search endpoints answering for existing
// clients. Results are fixed; no index is queried.
type FaissHandler struct {
	now func() time.Time
}

func NewFaissHandler() *FaissHandler {
	return &FaissHandler{now: time.Now}
}

type FaissHealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type SearchRequest struct {
	Text string `json:"text"`
}

type SearchResult struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

type SearchResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Query     string         `json:"query"`
	Results   []SearchResult `json:"results"`
	Timestamp string         `json:"timestamp"`
}

func (h *FaissHandler) Health(_ *gin.Context) (*FaissHealthResponse, error) {
	return &FaissHealthResponse{
		Status:    "healthy",
		Service:   "faiss",
		Message:   "FAISS service operational",
		Timestamp: h.now().Format(time.RFC3339),
	}, nil
}

func (h *FaissHandler) Search(c *gin.Context) (*SearchResponse, error) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, bindFault("body", err)
	}

	logger.Debug(c.Request.Context(), "faiss search", "query_length", len(req.Text))

	return &SearchResponse{
		Status:  "success",
		Message: "FAISS search completed",
		Query:   req.Text,
		Results: []SearchResult{
			{ID: 1, Score: 0.95, Text: "Resultado simulado 1"},
			{ID: 2, Score: 0.87, Text: "Resultado simulado 2"},
		},
		Timestamp: h.now().Format(time.RFC3339),
	}, nil
}
