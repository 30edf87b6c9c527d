package channel

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackPublisher publishes messages to a Slack channel. The topic passed to
// Publish is the Slack channel ID.
type SlackPublisher struct {
	client slackClient
}

// SlackOpts holds parameters for creating a SlackPublisher.
type SlackOpts struct {
	BotToken string // xoxb-... Slack bot token
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a SlackPublisher.
func NewSlack(opts SlackOpts) (*SlackPublisher, error) {
	if opts.Client != nil {
		return &SlackPublisher{client: opts.Client}, nil
	}
	if opts.BotToken == "" {
		return nil, fmt.Errorf("channel: slack bot token is required")
	}
	return &SlackPublisher{client: slackapi.New(opts.BotToken)}, nil
}

// Publish posts the payload as a message to the channel named by topic.
func (p *SlackPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	_, _, err := p.client.PostMessageContext(ctx, topic,
		slackapi.MsgOptionText(string(payload), false))
	if err != nil {
		return fmt.Errorf("channel: slack publish to %s: %w", topic, err)
	}
	return nil
}

// Close is a no-op; the Slack web API client holds no connection.
func (p *SlackPublisher) Close() error { return nil }
