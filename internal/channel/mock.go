package channel

import (
	"context"
	"fmt"
	"sync"
)

// Publication records a single Publish call made against a MockPublisher.
type Publication struct {
	Topic   string
	Payload []byte
}

// MockPublisher implements Publisher for testing. It records published
// payloads and allows injecting failures.
type MockPublisher struct {
	mu        sync.Mutex
	closed    bool
	published []Publication
	failErr   error
}

// NewMock creates a MockPublisher.
func NewMock() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the publication, or returns the injected failure.
func (m *MockPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("mock publisher: already closed")
	}
	if m.failErr != nil {
		return m.failErr
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.published = append(m.published, Publication{Topic: topic, Payload: buf})
	return nil
}

// Close marks the publisher as closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// --- Test helpers ---

// FailWith makes subsequent Publish calls return err. Pass nil to clear.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// PublishedCount returns the number of recorded publications.
func (m *MockPublisher) PublishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

// LastPublished returns the most recent publication.
// Returns zero value and false if nothing has been published.
func (m *MockPublisher) LastPublished() (Publication, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.published) == 0 {
		return Publication{}, false
	}
	return m.published[len(m.published)-1], true
}

// AllPublished returns a copy of all recorded publications.
func (m *MockPublisher) AllPublished() []Publication {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Publication, len(m.published))
	copy(out, m.published)
	return out
}
