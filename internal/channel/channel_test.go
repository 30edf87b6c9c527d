package channel

import (
	"context"
	"errors"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/postbox/internal/config"
)

func TestFromConfig_Log(t *testing.T) {
	pub, err := FromConfig(config.ChannelConfig{Kind: "log"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := pub.(*LogPublisher); !ok {
		t.Errorf("publisher type = %T, want *LogPublisher", pub)
	}
}

func TestFromConfig_UnknownKind(t *testing.T) {
	_, err := FromConfig(config.ChannelConfig{Kind: "sns"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "unknown kind") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLogPublisher_NeverFails(t *testing.T) {
	pub := NewLog(nil)
	if err := pub.Publish(context.Background(), "messages", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewSlack_RequiresToken(t *testing.T) {
	_, err := NewSlack(SlackOpts{})
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "bot token is required") {
		t.Errorf("error = %q", err.Error())
	}
}

// fakeSlackClient records PostMessageContext calls.
type fakeSlackClient struct {
	channelID string
	texts     []string
	err       error
}

func (f *fakeSlackClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.channelID = channelID
	f.texts = append(f.texts, "sent")
	return channelID, "1234.5678", nil
}

func TestSlackPublisher_PostsToTopicChannel(t *testing.T) {
	fake := &fakeSlackClient{}
	pub, err := NewSlack(SlackOpts{Client: fake})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := pub.Publish(context.Background(), "C0123456", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if fake.channelID != "C0123456" {
		t.Errorf("channel = %q, want C0123456", fake.channelID)
	}
	if len(fake.texts) != 1 {
		t.Errorf("posts = %d, want 1", len(fake.texts))
	}
}

func TestSlackPublisher_WrapsError(t *testing.T) {
	fake := &fakeSlackClient{err: errors.New("rate limited")}
	pub, _ := NewSlack(SlackOpts{Client: fake})

	err := pub.Publish(context.Background(), "C0123456", []byte("{}"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "slack publish to C0123456") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestNewDiscord_RequiresToken(t *testing.T) {
	_, err := NewDiscord(DiscordOpts{})
	if err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestMockPublisher_Records(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	if err := m.Publish(ctx, "messages", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := m.Publish(ctx, "messages", []byte(`{"id":"2"}`)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if m.PublishedCount() != 2 {
		t.Errorf("count = %d, want 2", m.PublishedCount())
	}
	last, ok := m.LastPublished()
	if !ok {
		t.Fatal("expected a publication")
	}
	if last.Topic != "messages" || string(last.Payload) != `{"id":"2"}` {
		t.Errorf("last = %+v", last)
	}
}

func TestMockPublisher_FailWith(t *testing.T) {
	m := NewMock()
	sentinel := errors.New("channel down")
	m.FailWith(sentinel)

	err := m.Publish(context.Background(), "messages", []byte("{}"))
	if !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want sentinel", err)
	}
	if m.PublishedCount() != 0 {
		t.Errorf("count = %d, want 0", m.PublishedCount())
	}
}

func TestMockPublisher_Closed(t *testing.T) {
	m := NewMock()
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := m.Publish(context.Background(), "messages", []byte("{}")); err == nil {
		t.Fatal("expected error after close")
	}
}
