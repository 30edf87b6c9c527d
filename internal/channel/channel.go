// Package channel implements the notification channel: fan-out publication
// of newly created messages to subscribers via a pluggable backend.
package channel

import (
	"context"
	"fmt"

	"github.com/zulandar/postbox/internal/config"
	"go.uber.org/zap"
)

// Publisher is the interface that channel backends must satisfy. Publish
// returns synchronously; delivery to subscribers beyond that point is
// asynchronous and at-least-once from the backend's perspective.
type Publisher interface {
	// Publish sends a UTF-8 JSON payload to the named topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Close gracefully shuts down the backend connection.
	Close() error
}

// FromConfig builds the configured Publisher backend.
func FromConfig(cfg config.ChannelConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Kind {
	case "log":
		return NewLog(logger), nil
	case "slack":
		return NewSlack(SlackOpts{BotToken: cfg.Slack.BotToken})
	case "discord":
		return NewDiscord(DiscordOpts{BotToken: cfg.Discord.BotToken})
	default:
		return nil, fmt.Errorf("channel: unknown kind %q", cfg.Kind)
	}
}
