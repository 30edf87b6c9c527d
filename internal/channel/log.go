package channel

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher writes publishes to the process log. It is the default
// backend for local development, where no external channel exists.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLog creates a LogPublisher. A nil logger falls back to a no-op logger.
func NewLog(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the payload under the topic. It never fails.
func (p *LogPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.logger.Info("message published",
		zap.String("topic", topic),
		zap.ByteString("payload", payload))
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
