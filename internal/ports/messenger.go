package ports

import "context"

// SendResultSent is the only transport status treated as a successful dispatch.
const SendResultSent = "sent"

// Status reported by the messaging transport for one dispatch.
type SendReport struct {
	Result string `json:"result"`
}

// Contract for the SMS/messaging transport.
type Messenger interface {
	// Deliver body to every recipient in a single dispatch.
	Send(ctx context.Context, recipients []string, body string) (SendReport, error)
}
