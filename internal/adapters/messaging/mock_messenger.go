package messaging

import (
	"context"
	"emergency-response-service/internal/ports"
	"sync"
)

// SentMessage records one call to MockMessenger.Send.
type SentMessage struct {
	Recipients []string
	Body       string
}

// MockMessenger records every dispatch and answers with Result or Err.
// An empty Result reports "sent".
type MockMessenger struct {
	Result string
	Err    error

	mu   sync.Mutex
	sent []SentMessage
}

func (m *MockMessenger) Send(ctx context.Context, recipients []string, body string) (ports.SendReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMessage{
		Recipients: append([]string(nil), recipients...),
		Body:       body,
	})
	if m.Err != nil {
		return ports.SendReport{}, m.Err
	}
	if m.Result == "" {
		return ports.SendReport{Result: ports.SendResultSent}, nil
	}
	return ports.SendReport{Result: m.Result}, nil
}

func (m *MockMessenger) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.sent...)
}
