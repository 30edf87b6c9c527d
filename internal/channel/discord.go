package channel

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the Discord API methods we use, enabling test mocks.
type discordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// DiscordPublisher publishes messages to a Discord channel. The topic passed
// to Publish is the Discord channel ID.
type DiscordPublisher struct {
	session discordSession
}

// DiscordOpts holds parameters for creating a DiscordPublisher.
type DiscordOpts struct {
	BotToken string
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a DiscordPublisher.
func NewDiscord(opts DiscordOpts) (*DiscordPublisher, error) {
	if opts.Session != nil {
		return &DiscordPublisher{session: opts.Session}, nil
	}
	if opts.BotToken == "" {
		return nil, fmt.Errorf("channel: discord bot token is required")
	}
	session, err := discordgo.New("Bot " + opts.BotToken)
	if err != nil {
		return nil, fmt.Errorf("channel: discord session: %w", err)
	}
	return &DiscordPublisher{session: session}, nil
}

// Publish posts the payload as a message to the channel named by topic.
func (p *DiscordPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	_, err := p.session.ChannelMessageSend(topic, string(payload), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("channel: discord publish to %s: %w", topic, err)
	}
	return nil
}

// Close shuts down the Discord session.
func (p *DiscordPublisher) Close() error {
	return p.session.Close()
}
