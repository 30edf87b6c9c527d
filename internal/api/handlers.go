// Package api hosts the HTTP surface: message submission and query-by-author.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/postbox/internal/channel"
	"github.com/zulandar/postbox/internal/models"
	"go.uber.org/zap"
)

// MessageStore is the durable-store contract the handlers depend on.
type MessageStore interface {
	Put(ctx context.Context, msg *models.Message) error
	ByAuthor(ctx context.Context, author string) ([]models.Message, error)
}

// Handlers holds the request-processing units and their collaborators.
// All dependencies are fixed at construction; request handling never
// consults ambient state.
type Handlers struct {
	store  MessageStore
	pub    channel.Publisher
	topic  string
	logger *zap.Logger
}

// NewHandlers creates the handler set. A nil logger falls back to a no-op
// logger.
func NewHandlers(store MessageStore, pub channel.Publisher, topic string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{store: store, pub: pub, topic: topic, logger: logger}
}

// statusBody is the envelope for status-only responses.
type statusBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// itemsBody is the envelope for query results. Items is always present,
// empty on zero matches.
type itemsBody struct {
	Success bool             `json:"success"`
	Items   []models.Message `json:"items"`
}

// logResponse records the outcome of a successfully handled request.
func (h *Handlers) logResponse(c *gin.Context, status int, body interface{}) {
	h.logger.Info("response",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Any("body", body))
}
