package messaging

import (
	"context"
	"emergency-response-service/internal/ports"

	"github.com/rs/zerolog/log"
)

// LogMessenger is the dry-run transport used when no SMS gateway is
// configured. It logs the dispatch and reports it as sent.
type LogMessenger struct{}

func (LogMessenger) Send(ctx context.Context, recipients []string, body string) (ports.SendReport, error) {
	if err := ctx.Err(); err != nil {
		return ports.SendReport{}, err
	}
	log.Info().
		Strs("recipients", recipients).
		Str("body", body).
		Msg("sms dry run")
	return ports.SendReport{Result: ports.SendResultSent}, nil
}
